package services

import (
	"time"

	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InviteStore is the persistence seam for the invite/password-set token
// lifecycle. Composite methods are transactional in the GORM
// implementation so a partial write never survives.
type InviteStore interface {
	// FindUserByEmail matches soft-deleted rows too, so a removed
	// identity can be reclaimed instead of colliding with the unique
	// email index.
	FindUserByEmail(email string) (*models.User, error)
	UserByID(id uuid.UUID) (*models.User, error)
	RoleForUser(userID uuid.UUID) (*models.UserRole, error)
	CompanyName(id uuid.UUID) (string, error)

	// CreateInvitedUser persists a brand-new disabled account, its role
	// row, and the first invite token.
	CreateInvitedUser(user *models.User, role *models.UserRole, token *models.InviteToken) error
	// ReclaimUser revives a deleted or never-activated account in place:
	// applies updates, replaces the role row, drops unused same-purpose
	// tokens, and stores the fresh one.
	ReclaimUser(userID uuid.UUID, updates map[string]interface{}, role *models.UserRole, token *models.InviteToken) error
	// ReissueToken drops every unused token of the given purpose for the
	// user and stores the replacement.
	ReissueToken(userID uuid.UUID, purpose string, token *models.InviteToken) error

	TokenByValue(raw string) (*models.InviteToken, error)
	// ConsumeToken stamps used_at exactly once and activates the account
	// with the new credential. A token already consumed by a concurrent
	// caller yields ErrTokenUsed.
	ConsumeToken(tokenID, userID uuid.UUID, passwordHash string, now time.Time) error
}

type gormInviteStore struct {
	db *gorm.DB
}

// deleteUnusedTokens invalidates pending tokens of one purpose only, so
// a password reset can never void a pending invite and vice versa.
func deleteUnusedTokens(tx *gorm.DB, userID uuid.UUID, purpose string) error {
	return tx.Where("user_id = ? AND used_at IS NULL AND purpose = ?", userID, purpose).
		Delete(&models.InviteToken{}).Error
}

func (s *gormInviteStore) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Unscoped().Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormInviteStore) UserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormInviteStore) RoleForUser(userID uuid.UUID) (*models.UserRole, error) {
	var role models.UserRole
	if err := s.db.Where("user_id = ?", userID).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *gormInviteStore) CompanyName(id uuid.UUID) (string, error) {
	var company models.Company
	if err := s.db.First(&company, "id = ?", id).Error; err != nil {
		return "", err
	}
	return company.Name, nil
}

func (s *gormInviteStore) CreateInvitedUser(user *models.User, role *models.UserRole, token *models.InviteToken) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if err := tx.Create(role).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

func (s *gormInviteStore) ReclaimUser(userID uuid.UUID, updates map[string]interface{}, role *models.UserRole, token *models.InviteToken) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			return err
		}
		// single authoritative role row per user
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		if err := tx.Create(role).Error; err != nil {
			return err
		}
		if err := deleteUnusedTokens(tx, userID, token.Purpose); err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

func (s *gormInviteStore) ReissueToken(userID uuid.UUID, purpose string, token *models.InviteToken) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteUnusedTokens(tx, userID, purpose); err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

func (s *gormInviteStore) TokenByValue(raw string) (*models.InviteToken, error) {
	var record models.InviteToken
	if err := s.db.Where("token = ?", raw).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *gormInviteStore) ConsumeToken(tokenID, userID uuid.UUID, passwordHash string, now time.Time) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.InviteToken{}).
			Where("id = ? AND used_at IS NULL", tokenID).
			Update("used_at", now)
		if res.Error != nil {
			return res.Error
		}
		// lost the race with a concurrent consumer
		if res.RowsAffected == 0 {
			return ErrTokenUsed
		}

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"password": passwordHash,
				"disabled": false,
			}).Error
	})
}
