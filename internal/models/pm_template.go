package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PMTemplate describes a preventive-maintenance schedule. Checklist is a
// JSON array of task descriptions applied when a PM work order is opened.
type PMTemplate struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	IntervalMiles int            `gorm:"default:0" json:"interval_miles"`
	IntervalDays  int            `gorm:"default:0" json:"interval_days"`
	Checklist     datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"checklist"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
