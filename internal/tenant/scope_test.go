package tenant

import (
	"testing"

	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/authz"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

func TestForCompanyPinsQueries(t *testing.T) {
	t.Parallel()

	db := dryRunDB(t)
	companyID := uuid.New()

	stmt := db.Scopes(ForCompany(companyID)).Find(&[]models.Truck{}).Statement
	require.Contains(t, stmt.SQL.String(), "company_id = ?")
	require.Contains(t, stmt.Vars, companyID)
}

func TestForActorMasterAdminSeesAllCompanies(t *testing.T) {
	t.Parallel()

	db := dryRunDB(t)
	actor := authz.Actor{UserID: uuid.New(), Role: authz.RoleMasterAdmin}

	stmt := db.Scopes(ForActor(actor)).Find(&[]models.User{}).Statement
	require.NotContains(t, stmt.SQL.String(), "company_id")
}

func TestForActorCompanyRolePinnedToOwnCompany(t *testing.T) {
	t.Parallel()

	db := dryRunDB(t)
	companyID := uuid.New()
	actor := authz.Actor{UserID: uuid.New(), Role: authz.RoleCompanyAdmin, CompanyID: &companyID}

	stmt := db.Scopes(ForActor(actor)).Find(&[]models.User{}).Statement
	require.Contains(t, stmt.SQL.String(), "company_id = ?")
	require.Contains(t, stmt.Vars, companyID)
}

func TestForActorCompanylessNonMasterMatchesNothing(t *testing.T) {
	t.Parallel()

	db := dryRunDB(t)
	actor := authz.Actor{UserID: uuid.New(), Role: authz.RoleTechnician}

	stmt := db.Scopes(ForActor(actor)).Find(&[]models.User{}).Statement
	require.Contains(t, stmt.SQL.String(), "1 = 0")
}
