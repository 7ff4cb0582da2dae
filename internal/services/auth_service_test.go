package services

import (
	"testing"

	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAuthEmailPurpose(t *testing.T) {
	t.Parallel()

	require.Equal(t, models.TokenPurposeMagicLink, authEmailPurpose(AuthEmailMagicLink))
	require.Equal(t, models.TokenPurposeReset, authEmailPurpose(AuthEmailReset))
	// unknown actions fall back to reset, never to the invite purpose
	require.Equal(t, models.TokenPurposeReset, authEmailPurpose("something-else"))
}

func TestDeleteUnusedTokensIsPurposeScoped(t *testing.T) {
	t.Parallel()

	db, rec := recordedDB(t)
	userID := uuid.New()

	require.NoError(t, deleteUnusedTokens(db, userID, models.TokenPurposeReset))

	require.Len(t, rec.statements, 1)
	sql := rec.statements[0]
	require.Contains(t, sql, "invite_tokens")
	require.Contains(t, sql, "used_at IS NULL")
	require.Contains(t, sql, "purpose = ")
}

func TestHashTokenStableHex(t *testing.T) {
	t.Parallel()

	h := hashToken("raw-refresh-token")
	require.Len(t, h, 64)
	require.Equal(t, h, hashToken("raw-refresh-token"))
	require.NotEqual(t, h, hashToken("other-token"))
}

func TestNewRawTokenShape(t *testing.T) {
	t.Parallel()

	a, err := newRawToken()
	require.NoError(t, err)
	require.Len(t, a, 64)

	b, err := newRawToken()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
