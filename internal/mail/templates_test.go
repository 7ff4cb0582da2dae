package mail

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInviteEmail(t *testing.T) {
	t.Parallel()

	subject, html, err := InviteEmail("https://app.fleetwise.app", "abc123", "office_manager", "Acme Trucking", 48)
	require.NoError(t, err)
	require.Equal(t, "You're invited to FleetWise", subject)
	require.Contains(t, html, "https://app.fleetwise.app/accept-invite?token=abc123")
	require.Contains(t, html, "Office Manager")
	require.Contains(t, html, "Acme Trucking")
	require.Contains(t, html, "48 hours")
}

func TestInviteEmailNoCompany(t *testing.T) {
	t.Parallel()

	_, html, err := InviteEmail("https://app.fleetwise.app", "abc123", "master_admin", "", 48)
	require.NoError(t, err)
	require.Contains(t, html, "Master Admin")
	require.NotContains(t, html, "<strong></strong>")
}

func TestResetEmailEscapesContent(t *testing.T) {
	t.Parallel()

	_, html, err := ResetEmail("https://app.fleetwise.app", "tok", `<script>alert(1)</script>@x.com`, 48)
	require.NoError(t, err)
	require.NotContains(t, html, "<script>")
	require.Contains(t, html, "/reset-password?token=tok")
}

func TestMagicLinkEmail(t *testing.T) {
	t.Parallel()

	subject, html, err := MagicLinkEmail("https://app.fleetwise.app", "tok", "tech@example.com")
	require.NoError(t, err)
	require.Contains(t, subject, "sign-in")
	require.Contains(t, html, "/magic-link?token=tok")
	require.Contains(t, html, "tech@example.com")
}
