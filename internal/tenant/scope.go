package tenant

import (
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/authz"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForCompany returns a GORM scope that filters rows by company_id.
func ForCompany(companyID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// ForActor applies company scoping for the caller. Master admins see
// every company; everyone else is pinned to their own.
func ForActor(actor authz.Actor) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actor.Role == authz.RoleMasterAdmin {
			return db
		}
		if actor.CompanyID == nil {
			// non-master actor without a company can match nothing
			return db.Where("1 = 0")
		}
		return db.Where("company_id = ?", *actor.CompanyID)
	}
}
