package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CreateCustomerRequest struct {
	Name         string `json:"name"`
	ContactName  string `json:"contact_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	BillingEmail string `json:"billing_email"`
	Notes        string `json:"notes"`
}

type UpdateCustomerRequest struct {
	Name         *string `json:"name"`
	ContactName  *string `json:"contact_name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Zip          *string `json:"zip"`
	BillingEmail *string `json:"billing_email"`
	Notes        *string `json:"notes"`
}

type CreateTruckRequest struct {
	CustomerID  uuid.UUID `json:"customer_id"`
	UnitNumber  string    `json:"unit_number"`
	VIN         string    `json:"vin"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	Year        int       `json:"year"`
	EngineMake  string    `json:"engine_make"`
	EngineModel string    `json:"engine_model"`
	Mileage     int       `json:"mileage"`
}

type UpdateTruckRequest struct {
	UnitNumber  *string `json:"unit_number"`
	VIN         *string `json:"vin"`
	Make        *string `json:"make"`
	Model       *string `json:"model"`
	Year        *int    `json:"year"`
	EngineMake  *string `json:"engine_make"`
	EngineModel *string `json:"engine_model"`
	Mileage     *int    `json:"mileage"`
	Status      *string `json:"status"`
}

type CreateNoteRequest struct {
	TruckID uuid.UUID `json:"truck_id"`
	Content string    `json:"content"`
}

type CreateWorkOrderRequest struct {
	TruckID    uuid.UUID      `json:"truck_id"`
	Complaint  string         `json:"complaint"`
	FaultCodes datatypes.JSON `json:"fault_codes"`
	Mileage    int            `json:"mileage"`
	AssignedTo *uuid.UUID     `json:"assigned_to"`
}

type UpdateWorkOrderRequest struct {
	Complaint  *string         `json:"complaint"`
	FaultCodes *datatypes.JSON `json:"fault_codes"`
	Mileage    *int            `json:"mileage"`
	AssignedTo *uuid.UUID      `json:"assigned_to"`
	Status     *string         `json:"status"`
}

type CreateLineItemRequest struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	PartNumber  string  `json:"part_number"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type CreateInvoiceRequest struct {
	WorkOrderID uuid.UUID  `json:"work_order_id"`
	TaxRate     float64    `json:"tax_rate"`
	DueDate     *time.Time `json:"due_date"`
}

type CreatePMTemplateRequest struct {
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	IntervalMiles int            `json:"interval_miles"`
	IntervalDays  int            `json:"interval_days"`
	Checklist     datatypes.JSON `json:"checklist"`
}

type UpdatePMTemplateRequest struct {
	Name          *string         `json:"name"`
	Description   *string         `json:"description"`
	IntervalMiles *int            `json:"interval_miles"`
	IntervalDays  *int            `json:"interval_days"`
	Checklist     *datatypes.JSON `json:"checklist"`
}

type ListResponse struct {
	Items  interface{} `json:"items"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}
