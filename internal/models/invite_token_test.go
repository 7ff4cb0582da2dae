package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInviteTokenStatus(t *testing.T) {
	t.Parallel()

	now := time.Now()
	used := now.Add(-time.Hour)

	cases := []struct {
		name  string
		token InviteToken
		want  string
	}{
		{"fresh token is valid", InviteToken{ExpiresAt: now.Add(time.Hour)}, InviteStatusValid},
		{"past expiry is expired", InviteToken{ExpiresAt: now.Add(-time.Minute)}, InviteStatusExpired},
		{"consumed token is used", InviteToken{ExpiresAt: now.Add(time.Hour), UsedAt: &used}, InviteStatusUsed},
		{"used wins over expired", InviteToken{ExpiresAt: now.Add(-time.Hour), UsedAt: &used}, InviteStatusUsed},
		{"exactly at expiry is still valid", InviteToken{ExpiresAt: now}, InviteStatusValid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, tc.token.Status(now))
		})
	}
}
