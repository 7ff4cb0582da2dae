package models

import (
	"time"

	"github.com/google/uuid"
)

// Invite token states. A token starts as issued and ends as used or
// expired; both end states are terminal.
const (
	InviteStatusValid   = "valid"
	InviteStatusUsed    = "used"
	InviteStatusExpired = "expired"
)

// Token purposes. Issuing a new token only invalidates unused tokens of
// the same purpose, so a password-reset request cannot void a pending
// invite.
const (
	TokenPurposeInvite    = "invite"
	TokenPurposeReset     = "reset"
	TokenPurposeMagicLink = "magic_link"
)

// InviteToken is a single-use, time-boxed credential that lets an
// otherwise-unauthenticated party set a password. The same record backs
// both invites and password resets.
type InviteToken struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Email     string     `gorm:"not null;size:255" json:"email"`
	Role      string     `gorm:"size:30;not null" json:"role"`
	CompanyID *uuid.UUID `gorm:"type:uuid" json:"company_id"`
	Purpose   string     `gorm:"size:20;not null;default:'invite';index" json:"purpose"`
	Token     string     `gorm:"uniqueIndex;not null;size:64" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// Status reports the token state at the given instant. Used wins over
// expired so a consumed token never reverts to a different terminal state.
func (t *InviteToken) Status(now time.Time) string {
	if t.UsedAt != nil {
		return InviteStatusUsed
	}
	if now.After(t.ExpiresAt) {
		return InviteStatusExpired
	}
	return InviteStatusValid
}
