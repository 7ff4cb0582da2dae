package services

import (
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/models"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Allowed work-order status transitions. Completed and cancelled are
// terminal.
var workOrderTransitions = map[string][]string{
	models.WorkOrderStatusOpen:       {models.WorkOrderStatusInProgress, models.WorkOrderStatusCancelled},
	models.WorkOrderStatusInProgress: {models.WorkOrderStatusCompleted, models.WorkOrderStatusCancelled},
}

func workOrderTransitionAllowed(from, to string) bool {
	for _, next := range workOrderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type WorkOrderService struct {
	db *gorm.DB
}

func NewWorkOrderService(db *gorm.DB) *WorkOrderService {
	return &WorkOrderService{db: db}
}

func (s *WorkOrderService) Create(companyID uuid.UUID, req *dto.CreateWorkOrderRequest) (*models.WorkOrder, error) {
	var truck models.Truck
	err := s.db.Scopes(tenant.ForCompany(companyID)).
		First(&truck, "id = ?", req.TruckID).Error
	if err != nil {
		return nil, ErrNotFound
	}

	order := models.WorkOrder{
		ID:         uuid.New(),
		CompanyID:  companyID,
		TruckID:    req.TruckID,
		Number:     newNumber("WO"),
		Status:     models.WorkOrderStatusOpen,
		Complaint:  req.Complaint,
		FaultCodes: req.FaultCodes,
		Mileage:    req.Mileage,
		AssignedTo: req.AssignedTo,
	}
	if len(order.FaultCodes) == 0 {
		order.FaultCodes = []byte("[]")
	}
	if err := s.db.Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *WorkOrderService) Get(companyID, orderID uuid.UUID) (*models.WorkOrder, error) {
	var order models.WorkOrder
	err := s.db.Scopes(tenant.ForCompany(companyID)).
		Preload("LineItems").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		return nil, ErrNotFound
	}
	return &order, nil
}

func (s *WorkOrderService) List(companyID uuid.UUID, truckID *uuid.UUID, status string, limit, offset int) (*dto.ListResponse, error) {
	limit, offset = clampPage(limit, offset)

	q := s.db.Model(&models.WorkOrder{}).Scopes(tenant.ForCompany(companyID))
	if truckID != nil {
		q = q.Where("truck_id = ?", *truckID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var orders []models.WorkOrder
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		return nil, err
	}

	return &dto.ListResponse{Items: orders, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *WorkOrderService) Update(companyID, orderID uuid.UUID, req *dto.UpdateWorkOrderRequest) (*models.WorkOrder, error) {
	order, err := s.Get(companyID, orderID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Complaint != nil {
		updates["complaint"] = *req.Complaint
	}
	if req.FaultCodes != nil {
		updates["fault_codes"] = *req.FaultCodes
	}
	if req.Mileage != nil {
		updates["mileage"] = *req.Mileage
	}
	if req.AssignedTo != nil {
		updates["assigned_to"] = *req.AssignedTo
	}
	if req.Status != nil && *req.Status != order.Status {
		if !workOrderTransitionAllowed(order.Status, *req.Status) {
			return nil, ErrInvalidTransition
		}
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := s.db.Model(order).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(companyID, orderID)
}

func (s *WorkOrderService) Delete(companyID, orderID uuid.UUID) error {
	order, err := s.Get(companyID, orderID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("work_order_id = ?", orderID).Delete(&models.WorkOrderLineItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(order).Error
	})
}

// AddLineItem appends a labor or part line and refreshes the cached
// totals on the order.
func (s *WorkOrderService) AddLineItem(companyID, orderID uuid.UUID, req *dto.CreateLineItemRequest) (*models.WorkOrderLineItem, error) {
	if req.Type != models.LineItemTypeLabor && req.Type != models.LineItemTypePart {
		return nil, ErrValidation
	}
	if req.Description == "" || req.Quantity <= 0 || req.UnitPrice < 0 {
		return nil, ErrValidation
	}
	if _, err := s.Get(companyID, orderID); err != nil {
		return nil, err
	}

	item := models.WorkOrderLineItem{
		ID:          uuid.New(),
		CompanyID:   companyID,
		WorkOrderID: orderID,
		Type:        req.Type,
		Description: req.Description,
		PartNumber:  req.PartNumber,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return s.refreshTotals(tx, orderID)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *WorkOrderService) DeleteLineItem(companyID, orderID, itemID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND work_order_id = ? AND company_id = ?", itemID, orderID, companyID).
			Delete(&models.WorkOrderLineItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return s.refreshTotals(tx, orderID)
	})
}

func (s *WorkOrderService) refreshTotals(tx *gorm.DB, orderID uuid.UUID) error {
	var items []models.WorkOrderLineItem
	if err := tx.Where("work_order_id = ?", orderID).Find(&items).Error; err != nil {
		return err
	}

	var labor, parts float64
	for i := range items {
		switch items[i].Type {
		case models.LineItemTypeLabor:
			labor += items[i].Total()
		case models.LineItemTypePart:
			parts += items[i].Total()
		}
	}

	return tx.Model(&models.WorkOrder{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{"labor_total": labor, "parts_total": parts}).Error
}
