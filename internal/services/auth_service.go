package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/config"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/mail"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
)

// Auth-email actions accepted by the public endpoint.
const (
	AuthEmailReset     = "reset-password"
	AuthEmailMagicLink = "magic-link"
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	mailer mail.Mailer
}

func NewAuthService(db *gorm.DB, cfg *config.Config, mailer mail.Mailer) *AuthService {
	return &AuthService{db: db, cfg: cfg, mailer: mailer}
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	// disabled accounts and never-activated invites fail the same way as
	// a wrong password so login doesn't leak account state
	if user.Disabled || user.Password == "" {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	if user.Disabled {
		return nil, ErrInvalidToken
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// RequestAuthEmail handles the public reset-password / magic-link
// request. The outcome is always masked: unknown addresses, disabled
// accounts, and delivery failures all produce the same neutral reply,
// with the real cause only logged.
func (s *AuthService) RequestAuthEmail(action, email string) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		slog.Debug("auth email skipped: unknown address", "action", action, "email", email)
		return
	}
	if user.Disabled && action == AuthEmailMagicLink {
		slog.Debug("auth email skipped: account disabled", "action", action, "user_id", user.ID.String())
		return
	}

	token, err := newRawToken()
	if err != nil {
		slog.Error("auth email token generation failed", "action", action, "error", err)
		return
	}

	purpose := authEmailPurpose(action)

	// reset links ride the invite-token machinery: same table, same
	// single-use semantics. Only same-purpose tokens are invalidated, so
	// this public endpoint can never void a pending invite.
	record := models.InviteToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CompanyID: user.CompanyID,
		Purpose:   purpose,
		Token:     token,
		ExpiresAt: time.Now().Add(s.cfg.InviteExpiry),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteUnusedTokens(tx, user.ID, purpose); err != nil {
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		slog.Error("auth email token persist failed", "action", action, "error", err)
		return
	}

	expiryHours := int(s.cfg.InviteExpiry.Hours())
	var subject, html string
	switch action {
	case AuthEmailMagicLink:
		subject, html, err = mail.MagicLinkEmail(s.cfg.AppURL, token, user.Email)
	default:
		subject, html, err = mail.ResetEmail(s.cfg.AppURL, token, user.Email, expiryHours)
	}
	if err != nil {
		slog.Error("auth email render failed", "action", action, "error", err)
		return
	}

	if err := s.mailer.Send(user.Email, subject, html); err != nil {
		slog.Error("auth email delivery failed", "action", action, "user_id", user.ID.String(), "error", err)
	}
}

// authEmailPurpose maps a public auth-email action onto a token purpose.
// Never the invite purpose: the public endpoint must not touch invites.
func authEmailPurpose(action string) string {
	if action == AuthEmailMagicLink {
		return models.TokenPurposeMagicLink
	}
	return models.TokenPurposeReset
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         UserToResponse(user),
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}
	if user.CompanyID != nil {
		claims["company_id"] = user.CompanyID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	tokenHash := hashToken(rawToken)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

// Profile returns the caller's own account.
func (s *AuthService) Profile(userID uuid.UUID) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	resp := UserToResponse(&user)
	return &resp, nil
}

// UserToResponse maps a user row to its API shape.
func UserToResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		CompanyID: user.CompanyID,
		Disabled:  user.Disabled,
	}
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

// newRawToken returns a 32-byte random token as 64 hex characters.
func newRawToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(raw), nil
}
