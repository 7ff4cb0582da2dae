package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer owns trucks. Scoped by company.
type Customer struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	ContactName  string         `gorm:"size:255" json:"contact_name"`
	Email        string         `gorm:"size:255" json:"email"`
	Phone        string         `gorm:"size:30" json:"phone"`
	Address      string         `gorm:"size:255" json:"address"`
	City         string         `gorm:"size:100" json:"city"`
	State        string         `gorm:"size:50" json:"state"`
	Zip          string         `gorm:"size:20" json:"zip"`
	BillingEmail string         `gorm:"size:255" json:"billing_email"`
	Notes        string         `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
