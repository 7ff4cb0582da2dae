package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Truck statuses.
const (
	TruckStatusActive       = "active"
	TruckStatusInShop       = "in_shop"
	TruckStatusOutOfService = "out_of_service"
)

type Truck struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	CustomerID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	UnitNumber  string         `gorm:"size:50;not null" json:"unit_number"`
	VIN         string         `gorm:"size:64" json:"vin"`
	Make        string         `gorm:"size:100" json:"make"`
	Model       string         `gorm:"size:100" json:"model"`
	Year        int            `json:"year"`
	EngineMake  string         `gorm:"size:100" json:"engine_make"`
	EngineModel string         `gorm:"size:100" json:"engine_model"`
	Mileage     int            `gorm:"default:0" json:"mileage"`
	Status      string         `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TruckNote is a free-text note attached to a truck. Deleted together
// with its truck.
type TruckNote struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	TruckID   uuid.UUID `gorm:"type:uuid;not null;index" json:"truck_id"`
	AuthorID  uuid.UUID `gorm:"type:uuid" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
