package services

import (
	"errors"
	"log/slog"
	"time"

	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/authz"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/config"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/mail"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrTokenNotFound    = errors.New("invite token not found")
	ErrTokenUsed        = errors.New("invite token already used")
	ErrTokenExpired     = errors.New("invite token expired")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrForbidden        = errors.New("not allowed to perform this action")
	ErrInvalidRole      = errors.New("unknown role")
	ErrEmailRequired    = errors.New("email is required")
	ErrDuplicateEmail   = errors.New("an active account already uses this email")
)

const minPasswordLength = 6

// InviteService owns the invite / password-set token lifecycle. A token
// moves issued → used or issued → expired; both end states are terminal,
// and issuing a new token removes every unused one of the same purpose
// for that user.
type InviteService struct {
	store  InviteStore
	cfg    *config.Config
	mailer mail.Mailer
}

func NewInviteService(db *gorm.DB, cfg *config.Config, mailer mail.Mailer) *InviteService {
	return &InviteService{store: &gormInviteStore{db: db}, cfg: cfg, mailer: mailer}
}

// CreateInvite creates the invited account and issues a fresh single-use
// token. An email held by a deleted or never-activated account is
// reclaimed in place; an email held by an active account is a hard
// conflict, never a takeover. The operation succeeds once the token is
// persisted; email delivery failure only flips EmailSent.
func (s *InviteService) CreateInvite(actor authz.Actor, req *dto.CreateUserRequest) (*dto.InviteResponse, error) {
	if req.Email == "" {
		return nil, ErrEmailRequired
	}
	if !authz.Valid(req.Role) {
		return nil, ErrInvalidRole
	}
	if !authz.CanAssignRole(actor, req.Role, req.CompanyID) {
		return nil, ErrForbidden
	}

	token, err := newRawToken()
	if err != nil {
		return nil, err
	}

	record := models.InviteToken{
		ID:        uuid.New(),
		Email:     req.Email,
		Role:      req.Role,
		CompanyID: req.CompanyID,
		Purpose:   models.TokenPurposeInvite,
		Token:     token,
		ExpiresAt: time.Now().Add(s.cfg.InviteExpiry),
	}
	role := models.UserRole{
		ID:        uuid.New(),
		Role:      req.Role,
		CompanyID: req.CompanyID,
	}

	var userID uuid.UUID
	existing, err := s.store.FindUserByEmail(req.Email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user := models.User{
			ID:        uuid.New(),
			CompanyID: req.CompanyID,
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
			Role:      req.Role,
			Disabled:  true, // activated when the invite is accepted
		}
		userID = user.ID
		record.UserID = userID
		role.UserID = userID
		if err := s.store.CreateInvitedUser(&user, &role, &record); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		// only a deleted or never-activated identity may be reclaimed;
		// a live account is a conflict, not a target
		if !existing.DeletedAt.Valid && !existing.Disabled {
			return nil, ErrDuplicateEmail
		}
		userID = existing.ID
		record.UserID = userID
		role.UserID = userID
		updates := map[string]interface{}{
			"company_id": req.CompanyID,
			"first_name": req.FirstName,
			"last_name":  req.LastName,
			"phone":      req.Phone,
			"role":       req.Role,
			"disabled":   true,
			"deleted_at": nil,
		}
		if err := s.store.ReclaimUser(userID, updates, &role, &record); err != nil {
			return nil, err
		}
	}

	emailSent := s.sendInviteEmail(req.Email, token, req.Role, req.CompanyID)

	return &dto.InviteResponse{
		UserID:    userID,
		Email:     req.Email,
		Role:      req.Role,
		ExpiresAt: record.ExpiresAt,
		EmailSent: emailSent,
	}, nil
}

// ValidateInvite checks a raw token and returns its claims for display.
// NotFound, AlreadyUsed, and Expired are distinct failures.
func (s *InviteService) ValidateInvite(token string) (*dto.ValidateInviteResponse, error) {
	record, err := s.findToken(token)
	if err != nil {
		return nil, err
	}

	return &dto.ValidateInviteResponse{
		Email:     record.Email,
		Role:      record.Role,
		CompanyID: record.CompanyID,
		ExpiresAt: record.ExpiresAt,
	}, nil
}

// SetPassword consumes a token: sets the credential, stamps used_at, and
// clears the account's disabled flag. Consumption is exactly-once, so a
// replayed token fails AlreadyUsed even under concurrency.
func (s *InviteService) SetPassword(token, password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}

	record, err := s.findToken(token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.store.ConsumeToken(record.ID, record.UserID, string(hash), time.Now())
}

// ResendInvite invalidates every unused invite token for the user and
// issues a fresh one. Delivery failure is reported, not fatal.
func (s *InviteService) ResendInvite(actor authz.Actor, userID uuid.UUID) (*dto.InviteResponse, error) {
	user, err := s.store.UserByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	role, companyID := s.authoritativeRole(user)
	if !authz.CanManageUser(actor, role, companyID) {
		return nil, ErrForbidden
	}

	token, err := newRawToken()
	if err != nil {
		return nil, err
	}

	record := models.InviteToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Email:     user.Email,
		Role:      role,
		CompanyID: companyID,
		Purpose:   models.TokenPurposeInvite,
		Token:     token,
		ExpiresAt: time.Now().Add(s.cfg.InviteExpiry),
	}
	if err := s.store.ReissueToken(user.ID, models.TokenPurposeInvite, &record); err != nil {
		return nil, err
	}

	emailSent := s.sendInviteEmail(user.Email, token, role, companyID)

	return &dto.InviteResponse{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      role,
		ExpiresAt: record.ExpiresAt,
		EmailSent: emailSent,
	}, nil
}

func (s *InviteService) findToken(token string) (*models.InviteToken, error) {
	record, err := s.store.TokenByValue(token)
	if err != nil {
		return nil, ErrTokenNotFound
	}

	switch record.Status(time.Now()) {
	case models.InviteStatusUsed:
		return nil, ErrTokenUsed
	case models.InviteStatusExpired:
		return nil, ErrTokenExpired
	}
	return record, nil
}

// authoritativeRole prefers the UserRole row over the denormalized copy
// on the user.
func (s *InviteService) authoritativeRole(user *models.User) (string, *uuid.UUID) {
	if role, err := s.store.RoleForUser(user.ID); err == nil {
		return role.Role, role.CompanyID
	}
	return user.Role, user.CompanyID
}

func (s *InviteService) sendInviteEmail(email, token, role string, companyID *uuid.UUID) bool {
	companyName := ""
	if companyID != nil {
		if name, err := s.store.CompanyName(*companyID); err == nil {
			companyName = name
		}
	}

	subject, html, err := mail.InviteEmail(s.cfg.AppURL, token, role, companyName, int(s.cfg.InviteExpiry.Hours()))
	if err != nil {
		slog.Error("invite email render failed", "email", email, "error", err)
		return false
	}
	if err := s.mailer.Send(email, subject, html); err != nil {
		slog.Error("invite email delivery failed", "email", email, "error", err)
		return false
	}
	return true
}
