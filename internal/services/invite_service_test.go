package services

import (
	"errors"
	"testing"
	"time"

	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/authz"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/config"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// memoryInviteStore backs lifecycle tests without a database.
type memoryInviteStore struct {
	users     map[uuid.UUID]*models.User
	roles     map[uuid.UUID]*models.UserRole
	tokens    map[uuid.UUID]*models.InviteToken
	companies map[uuid.UUID]string
}

func newMemoryInviteStore() *memoryInviteStore {
	return &memoryInviteStore{
		users:     map[uuid.UUID]*models.User{},
		roles:     map[uuid.UUID]*models.UserRole{},
		tokens:    map[uuid.UUID]*models.InviteToken{},
		companies: map[uuid.UUID]string{},
	}
}

func (m *memoryInviteStore) FindUserByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryInviteStore) UserByID(id uuid.UUID) (*models.User, error) {
	u, ok := m.users[id]
	if !ok || u.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memoryInviteStore) RoleForUser(userID uuid.UUID) (*models.UserRole, error) {
	r, ok := m.roles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *memoryInviteStore) CompanyName(id uuid.UUID) (string, error) {
	name, ok := m.companies[id]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return name, nil
}

func (m *memoryInviteStore) CreateInvitedUser(user *models.User, role *models.UserRole, token *models.InviteToken) error {
	u, r, tok := *user, *role, *token
	m.users[u.ID] = &u
	m.roles[r.UserID] = &r
	m.tokens[tok.ID] = &tok
	return nil
}

func (m *memoryInviteStore) ReclaimUser(userID uuid.UUID, updates map[string]interface{}, role *models.UserRole, token *models.InviteToken) error {
	u, ok := m.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["company_id"]; ok {
		u.CompanyID = v.(*uuid.UUID)
	}
	if v, ok := updates["role"]; ok {
		u.Role = v.(string)
	}
	u.Disabled = true
	u.DeletedAt = gorm.DeletedAt{}
	r := *role
	m.roles[r.UserID] = &r
	m.dropUnused(userID, token.Purpose)
	tok := *token
	m.tokens[tok.ID] = &tok
	return nil
}

func (m *memoryInviteStore) ReissueToken(userID uuid.UUID, purpose string, token *models.InviteToken) error {
	m.dropUnused(userID, purpose)
	tok := *token
	m.tokens[tok.ID] = &tok
	return nil
}

func (m *memoryInviteStore) dropUnused(userID uuid.UUID, purpose string) {
	for id, t := range m.tokens {
		if t.UserID == userID && t.UsedAt == nil && t.Purpose == purpose {
			delete(m.tokens, id)
		}
	}
}

func (m *memoryInviteStore) TokenByValue(raw string) (*models.InviteToken, error) {
	for _, t := range m.tokens {
		if t.Token == raw {
			copied := *t
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryInviteStore) ConsumeToken(tokenID, userID uuid.UUID, passwordHash string, now time.Time) error {
	t, ok := m.tokens[tokenID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	// same exactly-once contract as the conditional UPDATE
	if t.UsedAt != nil {
		return ErrTokenUsed
	}
	t.UsedAt = &now
	if u, ok := m.users[userID]; ok {
		u.Password = passwordHash
		u.Disabled = false
	}
	return nil
}

func (m *memoryInviteStore) rawToken(userID uuid.UUID) string {
	for _, t := range m.tokens {
		if t.UserID == userID && t.UsedAt == nil {
			return t.Token
		}
	}
	return ""
}

type recordingMailer struct {
	sent []string
	fail bool
}

func (m *recordingMailer) Send(to, subject, html string) error {
	if m.fail {
		return errors.New("provider rejected message")
	}
	m.sent = append(m.sent, to)
	return nil
}

func inviteFixture() (*InviteService, *memoryInviteStore, *recordingMailer, authz.Actor, uuid.UUID) {
	store := newMemoryInviteStore()
	mailer := &recordingMailer{}
	companyID := uuid.New()
	store.companies[companyID] = "Hilltop Fleet Services"

	svc := &InviteService{
		store:  store,
		cfg:    &config.Config{InviteExpiry: 48 * time.Hour, AppURL: "http://localhost:5173"},
		mailer: mailer,
	}
	admin := authz.Actor{UserID: uuid.New(), Role: authz.RoleCompanyAdmin, CompanyID: &companyID}
	return svc, store, mailer, admin, companyID
}

func TestCreateInviteNewUser(t *testing.T) {
	t.Parallel()

	svc, store, mailer, admin, companyID := inviteFixture()

	resp, err := svc.CreateInvite(admin, &dto.CreateUserRequest{
		Email:     "tech@hilltop.example",
		Role:      authz.RoleTechnician,
		CompanyID: &companyID,
	})
	require.NoError(t, err)
	require.True(t, resp.EmailSent)
	require.Equal(t, []string{"tech@hilltop.example"}, mailer.sent)

	user := store.users[resp.UserID]
	require.NotNil(t, user)
	require.True(t, user.Disabled)
	require.Empty(t, user.Password)
	require.Equal(t, authz.RoleTechnician, store.roles[resp.UserID].Role)
	require.NotEmpty(t, store.rawToken(resp.UserID))
}

func TestCreateInviteActiveEmailConflicts(t *testing.T) {
	t.Parallel()

	svc, store, _, admin, companyID := inviteFixture()

	otherCompany := uuid.New()
	victim := &models.User{
		ID:        uuid.New(),
		CompanyID: &otherCompany,
		Email:     "victim@rival.example",
		Password:  "$2a$10$hash",
		Role:      authz.RoleOfficeManager,
	}
	store.users[victim.ID] = victim
	store.roles[victim.ID] = &models.UserRole{
		ID: uuid.New(), UserID: victim.ID, Role: authz.RoleOfficeManager, CompanyID: &otherCompany,
	}

	_, err := svc.CreateInvite(admin, &dto.CreateUserRequest{
		Email:     "victim@rival.example",
		Role:      authz.RoleTechnician,
		CompanyID: &companyID,
	})
	require.ErrorIs(t, err, ErrDuplicateEmail)

	// the live account is untouched: still active, still in its company
	require.False(t, store.users[victim.ID].Disabled)
	require.Equal(t, otherCompany, *store.users[victim.ID].CompanyID)
	require.Equal(t, authz.RoleOfficeManager, store.roles[victim.ID].Role)
}

func TestCreateInviteReclaimsDisabledUser(t *testing.T) {
	t.Parallel()

	svc, store, _, admin, companyID := inviteFixture()

	stale := &models.User{
		ID:        uuid.New(),
		CompanyID: &companyID,
		Email:     "former@hilltop.example",
		Role:      authz.RoleTechnician,
		Disabled:  true,
	}
	store.users[stale.ID] = stale

	resp, err := svc.CreateInvite(admin, &dto.CreateUserRequest{
		Email:     "former@hilltop.example",
		Role:      authz.RoleOfficeManager,
		CompanyID: &companyID,
	})
	require.NoError(t, err)
	// same identity, not a duplicate row
	require.Equal(t, stale.ID, resp.UserID)
	require.Equal(t, authz.RoleOfficeManager, store.roles[stale.ID].Role)
}

func TestCreateInviteReclaimsDeletedUser(t *testing.T) {
	t.Parallel()

	svc, store, _, admin, companyID := inviteFixture()

	removed := &models.User{
		ID:        uuid.New(),
		CompanyID: &companyID,
		Email:     "rehire@hilltop.example",
		Password:  "$2a$10$hash",
		Role:      authz.RoleTechnician,
		DeletedAt: gorm.DeletedAt{Time: time.Now().Add(-time.Hour), Valid: true},
	}
	store.users[removed.ID] = removed

	resp, err := svc.CreateInvite(admin, &dto.CreateUserRequest{
		Email:     "rehire@hilltop.example",
		Role:      authz.RoleTechnician,
		CompanyID: &companyID,
	})
	require.NoError(t, err)
	require.Equal(t, removed.ID, resp.UserID)
	require.False(t, store.users[removed.ID].DeletedAt.Valid)
	require.True(t, store.users[removed.ID].Disabled)
}

func TestCreateInviteForbiddenOutsideCompany(t *testing.T) {
	t.Parallel()

	svc, _, mailer, admin, _ := inviteFixture()

	otherCompany := uuid.New()
	_, err := svc.CreateInvite(admin, &dto.CreateUserRequest{
		Email:     "tech@elsewhere.example",
		Role:      authz.RoleTechnician,
		CompanyID: &otherCompany,
	})
	require.ErrorIs(t, err, ErrForbidden)
	require.Empty(t, mailer.sent)
}

func TestResendInviteInvalidatesPriorTokens(t *testing.T) {
	t.Parallel()

	svc, store, _, admin, companyID := inviteFixture()

	resp, err := svc.CreateInvite(admin, &dto.CreateUserRequest{
		Email:     "tech@hilltop.example",
		Role:      authz.RoleTechnician,
		CompanyID: &companyID,
	})
	require.NoError(t, err)
	first := store.rawToken(resp.UserID)
	require.NotEmpty(t, first)

	_, err = svc.ResendInvite(admin, resp.UserID)
	require.NoError(t, err)

	second := store.rawToken(resp.UserID)
	require.NotEmpty(t, second)
	require.NotEqual(t, first, second)

	// the superseded token is gone, not merely expired
	_, err = svc.ValidateInvite(first)
	require.ErrorIs(t, err, ErrTokenNotFound)

	_, err = svc.ValidateInvite(second)
	require.NoError(t, err)
}

func TestResendInviteLeavesResetTokensAlone(t *testing.T) {
	t.Parallel()

	svc, store, _, admin, companyID := inviteFixture()

	resp, err := svc.CreateInvite(admin, &dto.CreateUserRequest{
		Email:     "tech@hilltop.example",
		Role:      authz.RoleTechnician,
		CompanyID: &companyID,
	})
	require.NoError(t, err)

	reset := &models.InviteToken{
		ID:        uuid.New(),
		UserID:    resp.UserID,
		Email:     resp.Email,
		Purpose:   models.TokenPurposeReset,
		Token:     "reset-token-value",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	store.tokens[reset.ID] = reset

	_, err = svc.ResendInvite(admin, resp.UserID)
	require.NoError(t, err)

	// only invite-purpose tokens were replaced
	_, ok := store.tokens[reset.ID]
	require.True(t, ok)
}

func TestSetPasswordActivatesAccount(t *testing.T) {
	t.Parallel()

	svc, store, _, admin, companyID := inviteFixture()

	resp, err := svc.CreateInvite(admin, &dto.CreateUserRequest{
		Email:     "tech@hilltop.example",
		Role:      authz.RoleTechnician,
		CompanyID: &companyID,
	})
	require.NoError(t, err)
	token := store.rawToken(resp.UserID)

	require.NoError(t, svc.SetPassword(token, "s3cret-enough"))

	user := store.users[resp.UserID]
	require.False(t, user.Disabled)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret-enough")))
}

func TestSetPasswordConsumedTokenFailsUsed(t *testing.T) {
	t.Parallel()

	svc, store, _, admin, companyID := inviteFixture()

	resp, err := svc.CreateInvite(admin, &dto.CreateUserRequest{
		Email:     "tech@hilltop.example",
		Role:      authz.RoleTechnician,
		CompanyID: &companyID,
	})
	require.NoError(t, err)
	token := store.rawToken(resp.UserID)

	require.NoError(t, svc.SetPassword(token, "first-password"))
	require.ErrorIs(t, svc.SetPassword(token, "second-password"), ErrTokenUsed)
}

func TestSetPasswordRaceLoserFailsUsed(t *testing.T) {
	t.Parallel()

	svc, store, _, admin, companyID := inviteFixture()

	resp, err := svc.CreateInvite(admin, &dto.CreateUserRequest{
		Email:     "tech@hilltop.example",
		Role:      authz.RoleTechnician,
		CompanyID: &companyID,
	})
	require.NoError(t, err)
	token := store.rawToken(resp.UserID)

	// simulate losing the consume race: the row is stamped between this
	// caller's validity check and its conditional update
	record, err := store.TokenByValue(token)
	require.NoError(t, err)
	now := time.Now()
	store.tokens[record.ID].UsedAt = &now

	require.ErrorIs(t, svc.SetPassword(token, "late-password"), ErrTokenUsed)
}

func TestSetPasswordRejectsShortAndExpired(t *testing.T) {
	t.Parallel()

	svc, store, _, admin, companyID := inviteFixture()

	resp, err := svc.CreateInvite(admin, &dto.CreateUserRequest{
		Email:     "tech@hilltop.example",
		Role:      authz.RoleTechnician,
		CompanyID: &companyID,
	})
	require.NoError(t, err)
	token := store.rawToken(resp.UserID)

	require.ErrorIs(t, svc.SetPassword(token, "tiny"), ErrPasswordTooShort)

	record, err := store.TokenByValue(token)
	require.NoError(t, err)
	store.tokens[record.ID].ExpiresAt = time.Now().Add(-time.Minute)

	require.ErrorIs(t, svc.SetPassword(token, "long-enough"), ErrTokenExpired)
	require.ErrorIs(t, svc.SetPassword("0000", "long-enough"), ErrTokenNotFound)
}

func TestCreateInviteReportsEmailFailure(t *testing.T) {
	t.Parallel()

	svc, store, mailer, admin, companyID := inviteFixture()
	mailer.fail = true

	resp, err := svc.CreateInvite(admin, &dto.CreateUserRequest{
		Email:     "tech@hilltop.example",
		Role:      authz.RoleTechnician,
		CompanyID: &companyID,
	})
	require.NoError(t, err)
	require.False(t, resp.EmailSent)
	// the token survives delivery failure
	require.NotEmpty(t, store.rawToken(resp.UserID))
}
