package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is the tenant boundary. Every fleet entity belongs to exactly
// one company; only master admins live outside it.
type Company struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Address   string         `gorm:"size:255" json:"address"`
	City      string         `gorm:"size:100" json:"city"`
	State     string         `gorm:"size:50" json:"state"`
	Zip       string         `gorm:"size:20" json:"zip"`
	Phone     string         `gorm:"size:30" json:"phone"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
