package services

import (
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/authz"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/models"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserAdminService performs role-gated account administration. Every
// mutation re-checks the permission matrix against the target's
// authoritative role row.
type UserAdminService struct {
	db *gorm.DB
}

func NewUserAdminService(db *gorm.DB) *UserAdminService {
	return &UserAdminService{db: db}
}

func (s *UserAdminService) List(actor authz.Actor, limit, offset int) (*dto.UserListResponse, error) {
	var users []models.User
	var total int64

	q := s.db.Model(&models.User{}).Scopes(tenant.ForActor(actor))
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, err
	}

	resp := &dto.UserListResponse{
		Users:  make([]dto.UserResponse, len(users)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for i := range users {
		resp.Users[i] = UserToResponse(&users[i])
	}
	return resp, nil
}

func (s *UserAdminService) Get(actor authz.Actor, userID uuid.UUID) (*dto.UserResponse, error) {
	user, role, companyID, err := s.loadTarget(userID)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageUser(actor, role, companyID) {
		return nil, ErrForbidden
	}
	resp := UserToResponse(user)
	return &resp, nil
}

// Update changes profile fields and, when requested, the role. A role
// change must pass the assignment matrix for the new role as well.
func (s *UserAdminService) Update(actor authz.Actor, userID uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, role, companyID, err := s.loadTarget(userID)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageUser(actor, role, companyID) {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Role != nil && *req.Role != role {
		if !authz.Valid(*req.Role) {
			return nil, ErrInvalidRole
		}
		if !authz.CanAssignRole(actor, *req.Role, companyID) {
			return nil, ErrForbidden
		}
		updates["role"] = *req.Role
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(user).Updates(updates).Error; err != nil {
				return err
			}
		}
		if newRole, ok := updates["role"]; ok {
			if err := tx.Model(&models.UserRole{}).
				Where("user_id = ?", user.ID).
				Update("role", newRole).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(actor, userID)
}

// ToggleStatus flips the disabled flag. Disabling also revokes every
// refresh token so live sessions die with the account.
func (s *UserAdminService) ToggleStatus(actor authz.Actor, userID uuid.UUID) (*dto.UserResponse, error) {
	user, role, companyID, err := s.loadTarget(userID)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageUser(actor, role, companyID) {
		return nil, ErrForbidden
	}

	disabled := !user.Disabled
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Update("disabled", disabled).Error; err != nil {
			return err
		}
		if disabled {
			return tx.Model(&models.RefreshToken{}).
				Where("user_id = ?", user.ID).
				Update("revoked", true).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	user.Disabled = disabled
	resp := UserToResponse(user)
	return &resp, nil
}

// Delete removes the account and its dependents: refresh tokens, invite
// tokens, and the role row.
func (s *UserAdminService) Delete(actor authz.Actor, userID uuid.UUID) error {
	user, role, companyID, err := s.loadTarget(userID)
	if err != nil {
		return err
	}
	if !authz.CanManageUser(actor, role, companyID) {
		return ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.InviteToken{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}

func (s *UserAdminService) loadTarget(userID uuid.UUID) (*models.User, string, *uuid.UUID, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, "", nil, ErrUserNotFound
	}

	var role models.UserRole
	if err := s.db.Where("user_id = ?", userID).First(&role).Error; err == nil {
		return &user, role.Role, role.CompanyID, nil
	}
	return &user, user.Role, user.CompanyID, nil
}
