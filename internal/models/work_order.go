package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Work order statuses.
const (
	WorkOrderStatusOpen       = "open"
	WorkOrderStatusInProgress = "in_progress"
	WorkOrderStatusCompleted  = "completed"
	WorkOrderStatusCancelled  = "cancelled"
)

// Line item types.
const (
	LineItemTypeLabor = "labor"
	LineItemTypePart  = "part"
)

type WorkOrder struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	TruckID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"truck_id"`
	Number     string         `gorm:"size:30;not null;uniqueIndex" json:"number"`
	Status     string         `gorm:"size:20;default:'open';index" json:"status"`
	Complaint  string         `gorm:"type:text" json:"complaint"`
	FaultCodes datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"fault_codes"`
	Mileage    int            `json:"mileage"`
	AssignedTo *uuid.UUID     `gorm:"type:uuid" json:"assigned_to"`
	LaborTotal float64        `gorm:"default:0" json:"labor_total"`
	PartsTotal float64        `gorm:"default:0" json:"parts_total"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	LineItems []WorkOrderLineItem `gorm:"foreignKey:WorkOrderID" json:"line_items,omitempty"`
}

type WorkOrderLineItem struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	WorkOrderID uuid.UUID `gorm:"type:uuid;not null;index" json:"work_order_id"`
	Type        string    `gorm:"size:10;not null" json:"type"`
	Description string    `gorm:"size:255;not null" json:"description"`
	PartNumber  string    `gorm:"size:100" json:"part_number"`
	Quantity    float64   `gorm:"default:1" json:"quantity"`
	UnitPrice   float64   `gorm:"default:0" json:"unit_price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Total is the extended price of the line.
func (li *WorkOrderLineItem) Total() float64 {
	return li.Quantity * li.UnitPrice
}
