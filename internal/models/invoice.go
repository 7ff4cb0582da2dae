package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Invoice statuses.
const (
	InvoiceStatusDraft = "draft"
	InvoiceStatusSent  = "sent"
	InvoiceStatusPaid  = "paid"
	InvoiceStatusVoid  = "void"
)

// Invoice is generated from a completed work order. LineItems is a JSON
// snapshot taken at creation so later work-order edits never change an
// issued invoice.
type Invoice struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	WorkOrderID uuid.UUID      `gorm:"type:uuid;not null;index" json:"work_order_id"`
	CustomerID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	Number      string         `gorm:"size:30;not null;uniqueIndex" json:"number"`
	Status      string         `gorm:"size:20;default:'draft';index" json:"status"`
	LineItems   datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"line_items"`
	Subtotal    float64        `gorm:"default:0" json:"subtotal"`
	TaxRate     float64        `gorm:"default:0" json:"tax_rate"`
	TaxAmount   float64        `gorm:"default:0" json:"tax_amount"`
	Total       float64        `gorm:"default:0" json:"total"`
	DueDate     *time.Time     `json:"due_date"`
	PaidAt      *time.Time     `json:"paid_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
