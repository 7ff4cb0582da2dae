package services

import (
	"encoding/json"
	"math"
	"time"

	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/models"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Allowed invoice status transitions. Void is reachable from any
// non-terminal state; paid stamps paid_at.
var invoiceTransitions = map[string][]string{
	models.InvoiceStatusDraft: {models.InvoiceStatusSent, models.InvoiceStatusVoid},
	models.InvoiceStatusSent:  {models.InvoiceStatusPaid, models.InvoiceStatusVoid},
}

func invoiceTransitionAllowed(from, to string) bool {
	for _, next := range invoiceTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// invoiceLine is the shape snapshotted into Invoice.LineItems.
type invoiceLine struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	PartNumber  string  `json:"part_number,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

// Create issues an invoice from a work order. The order's line items are
// copied into a JSON snapshot so later edits to the order never change
// an issued invoice.
func (s *InvoiceService) Create(companyID uuid.UUID, req *dto.CreateInvoiceRequest) (*models.Invoice, error) {
	if req.TaxRate < 0 {
		return nil, ErrValidation
	}

	var order models.WorkOrder
	err := s.db.Scopes(tenant.ForCompany(companyID)).
		Preload("LineItems").
		First(&order, "id = ?", req.WorkOrderID).Error
	if err != nil {
		return nil, ErrNotFound
	}

	var truck models.Truck
	if err := s.db.First(&truck, "id = ?", order.TruckID).Error; err != nil {
		return nil, ErrNotFound
	}

	lines := make([]invoiceLine, len(order.LineItems))
	var subtotal float64
	for i := range order.LineItems {
		li := &order.LineItems[i]
		lines[i] = invoiceLine{
			Type:        li.Type,
			Description: li.Description,
			PartNumber:  li.PartNumber,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Total:       li.Total(),
		}
		subtotal += li.Total()
	}
	snapshot, err := json.Marshal(lines)
	if err != nil {
		return nil, err
	}

	taxAmount := roundCents(subtotal * req.TaxRate)
	invoice := models.Invoice{
		ID:          uuid.New(),
		CompanyID:   companyID,
		WorkOrderID: order.ID,
		CustomerID:  truck.CustomerID,
		Number:      newNumber("INV"),
		Status:      models.InvoiceStatusDraft,
		LineItems:   snapshot,
		Subtotal:    roundCents(subtotal),
		TaxRate:     req.TaxRate,
		TaxAmount:   taxAmount,
		Total:       roundCents(subtotal) + taxAmount,
		DueDate:     req.DueDate,
	}
	if err := s.db.Create(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (s *InvoiceService) Get(companyID, invoiceID uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.Scopes(tenant.ForCompany(companyID)).
		First(&invoice, "id = ?", invoiceID).Error
	if err != nil {
		return nil, ErrNotFound
	}
	return &invoice, nil
}

func (s *InvoiceService) List(companyID uuid.UUID, customerID *uuid.UUID, status string, limit, offset int) (*dto.ListResponse, error) {
	limit, offset = clampPage(limit, offset)

	q := s.db.Model(&models.Invoice{}).Scopes(tenant.ForCompany(companyID))
	if customerID != nil {
		q = q.Where("customer_id = ?", *customerID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var invoices []models.Invoice
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&invoices).Error; err != nil {
		return nil, err
	}

	return &dto.ListResponse{Items: invoices, Total: total, Limit: limit, Offset: offset}, nil
}

// SetStatus moves the invoice along draft → sent → paid, or voids it.
func (s *InvoiceService) SetStatus(companyID, invoiceID uuid.UUID, status string) (*models.Invoice, error) {
	invoice, err := s.Get(companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if status == invoice.Status {
		return invoice, nil
	}
	if !invoiceTransitionAllowed(invoice.Status, status) {
		return nil, ErrInvalidTransition
	}

	updates := map[string]interface{}{"status": status}
	if status == models.InvoiceStatusPaid {
		now := time.Now()
		updates["paid_at"] = &now
	}
	if err := s.db.Model(invoice).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(companyID, invoiceID)
}

func (s *InvoiceService) Delete(companyID, invoiceID uuid.UUID) error {
	invoice, err := s.Get(companyID, invoiceID)
	if err != nil {
		return err
	}
	return s.db.Delete(invoice).Error
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
