// Package authz holds the role permission matrix. Checks are pure so the
// service layer and tests share one source of truth.
package authz

import "github.com/google/uuid"

// Roles, strongest first. master_admin is company-independent; every
// other role is scoped to a single company.
const (
	RoleMasterAdmin   = "master_admin"
	RoleCompanyAdmin  = "company_admin"
	RoleOfficeManager = "office_manager"
	RoleTechnician    = "technician"
)

var roleRank = map[string]int{
	RoleMasterAdmin:   4,
	RoleCompanyAdmin:  3,
	RoleOfficeManager: 2,
	RoleTechnician:    1,
}

// Valid reports whether role is a known role name.
func Valid(role string) bool {
	_, ok := roleRank[role]
	return ok
}

// Rank returns the privilege rank of a role, 0 for unknown roles.
func Rank(role string) int {
	return roleRank[role]
}

// Actor is the authenticated caller a permission check runs against.
// CompanyID is nil for master admins.
type Actor struct {
	UserID    uuid.UUID
	Role      string
	CompanyID *uuid.UUID
}

func sameCompany(a, b *uuid.UUID) bool {
	return a != nil && b != nil && *a == *b
}

// CanAssignRole reports whether the actor may create or re-assign a user
// with the given role in the given company. Company admins are limited to
// their own company but may hand out any non-master role; office managers
// are further limited to non-admin roles.
func CanAssignRole(actor Actor, targetRole string, targetCompany *uuid.UUID) bool {
	if !Valid(targetRole) {
		return false
	}
	// master_admin assignments are company-less, everything else needs a company
	if targetRole == RoleMasterAdmin {
		return actor.Role == RoleMasterAdmin && targetCompany == nil
	}
	if targetCompany == nil {
		return false
	}

	switch actor.Role {
	case RoleMasterAdmin:
		return true
	case RoleCompanyAdmin:
		return sameCompany(actor.CompanyID, targetCompany)
	case RoleOfficeManager:
		if !sameCompany(actor.CompanyID, targetCompany) {
			return false
		}
		return targetRole == RoleOfficeManager || targetRole == RoleTechnician
	default:
		return false
	}
}

// CanManageUser reports whether the actor may update, disable, or delete
// a user holding targetRole in targetCompany. Managing never grants more
// than assigning: the same matrix applies.
func CanManageUser(actor Actor, targetRole string, targetCompany *uuid.UUID) bool {
	if actor.Role == RoleMasterAdmin {
		return true
	}
	if targetRole == RoleMasterAdmin {
		return false
	}
	return CanAssignRole(actor, targetRole, targetCompany)
}
