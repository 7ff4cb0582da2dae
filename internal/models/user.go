package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the account profile. CompanyID is nil only for master admins.
// A user created by invite has an empty password hash until the invite
// token is consumed.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID *uuid.UUID     `gorm:"type:uuid;index" json:"company_id"`
	Email     string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string         `gorm:"not null;default:''" json:"-"`
	FirstName string         `gorm:"size:100" json:"first_name"`
	LastName  string         `gorm:"size:100" json:"last_name"`
	Phone     string         `gorm:"size:30" json:"phone"`
	Role      string         `gorm:"size:30;not null;default:'technician'" json:"role"`
	Disabled  bool           `gorm:"default:false" json:"disabled"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserRole is the authoritative role assignment consulted by permission
// checks. CompanyID is nil for master admins (company-independent role).
// At most one row per user.
type UserRole struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Role      string     `gorm:"size:30;not null" json:"role"`
	CompanyID *uuid.UUID `gorm:"type:uuid;index" json:"company_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
