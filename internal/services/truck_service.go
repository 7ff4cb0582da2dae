package services

import (
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/models"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var truckStatuses = map[string]bool{
	models.TruckStatusActive:       true,
	models.TruckStatusInShop:       true,
	models.TruckStatusOutOfService: true,
}

type TruckService struct {
	db *gorm.DB
}

func NewTruckService(db *gorm.DB) *TruckService {
	return &TruckService{db: db}
}

func (s *TruckService) Create(companyID uuid.UUID, req *dto.CreateTruckRequest) (*models.Truck, error) {
	if req.UnitNumber == "" {
		return nil, ErrValidation
	}

	// the customer must belong to the same company
	var customer models.Customer
	err := s.db.Scopes(tenant.ForCompany(companyID)).
		First(&customer, "id = ?", req.CustomerID).Error
	if err != nil {
		return nil, ErrNotFound
	}

	truck := models.Truck{
		ID:          uuid.New(),
		CompanyID:   companyID,
		CustomerID:  req.CustomerID,
		UnitNumber:  req.UnitNumber,
		VIN:         req.VIN,
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		EngineMake:  req.EngineMake,
		EngineModel: req.EngineModel,
		Mileage:     req.Mileage,
		Status:      models.TruckStatusActive,
	}
	if err := s.db.Create(&truck).Error; err != nil {
		return nil, err
	}
	return &truck, nil
}

func (s *TruckService) Get(companyID, truckID uuid.UUID) (*models.Truck, error) {
	var truck models.Truck
	err := s.db.Scopes(tenant.ForCompany(companyID)).
		First(&truck, "id = ?", truckID).Error
	if err != nil {
		return nil, ErrNotFound
	}
	return &truck, nil
}

func (s *TruckService) List(companyID uuid.UUID, customerID *uuid.UUID, status, search string, limit, offset int) (*dto.ListResponse, error) {
	limit, offset = clampPage(limit, offset)

	q := s.db.Model(&models.Truck{}).Scopes(tenant.ForCompany(companyID))
	if customerID != nil {
		q = q.Where("customer_id = ?", *customerID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("unit_number ILIKE ? OR vin ILIKE ? OR make ILIKE ? OR model ILIKE ?",
			pattern, pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var trucks []models.Truck
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&trucks).Error; err != nil {
		return nil, err
	}

	return &dto.ListResponse{Items: trucks, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *TruckService) Update(companyID, truckID uuid.UUID, req *dto.UpdateTruckRequest) (*models.Truck, error) {
	truck, err := s.Get(companyID, truckID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.UnitNumber != nil {
		if *req.UnitNumber == "" {
			return nil, ErrValidation
		}
		updates["unit_number"] = *req.UnitNumber
	}
	if req.VIN != nil {
		updates["vin"] = *req.VIN
	}
	if req.Make != nil {
		updates["make"] = *req.Make
	}
	if req.Model != nil {
		updates["model"] = *req.Model
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.EngineMake != nil {
		updates["engine_make"] = *req.EngineMake
	}
	if req.EngineModel != nil {
		updates["engine_model"] = *req.EngineModel
	}
	if req.Mileage != nil {
		updates["mileage"] = *req.Mileage
	}
	if req.Status != nil {
		if !truckStatuses[*req.Status] {
			return nil, ErrInvalidStatus
		}
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := s.db.Model(truck).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(companyID, truckID)
}

// Delete removes the truck and everything hanging off it: notes, chat
// sessions with their messages, and work orders with their line items
// and invoices. One transaction so a partial cascade never survives.
func (s *TruckService) Delete(companyID, truckID uuid.UUID) error {
	if _, err := s.Get(companyID, truckID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteTruckTree(tx, []uuid.UUID{truckID})
	})
}

// deleteTruckTree removes the given trucks and every record hanging off
// them, children before parents. Customer deletion reuses it for the
// customer's whole fleet. Subqueries are rebuilt per statement: a GORM
// query handle must not be reused once it has run.
func deleteTruckTree(tx *gorm.DB, truckIDs []uuid.UUID) error {
	if len(truckIDs) == 0 {
		return nil
	}

	sessionIDs := func() *gorm.DB {
		return tx.Model(&models.ChatSession{}).Select("id").Where("truck_id IN ?", truckIDs)
	}
	orderIDs := func() *gorm.DB {
		return tx.Model(&models.WorkOrder{}).Select("id").Where("truck_id IN ?", truckIDs)
	}

	if err := tx.Where("truck_id IN ?", truckIDs).Delete(&models.TruckNote{}).Error; err != nil {
		return err
	}
	if err := tx.Where("session_id IN (?)", sessionIDs()).Delete(&models.ChatMessage{}).Error; err != nil {
		return err
	}
	if err := tx.Where("truck_id IN ?", truckIDs).Delete(&models.ChatSession{}).Error; err != nil {
		return err
	}
	if err := tx.Where("work_order_id IN (?)", orderIDs()).Delete(&models.WorkOrderLineItem{}).Error; err != nil {
		return err
	}
	if err := tx.Where("work_order_id IN (?)", orderIDs()).Delete(&models.Invoice{}).Error; err != nil {
		return err
	}
	if err := tx.Where("truck_id IN ?", truckIDs).Delete(&models.WorkOrder{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", truckIDs).Delete(&models.Truck{}).Error
}

// Notes

func (s *TruckService) AddNote(companyID, truckID, authorID uuid.UUID, content string) (*models.TruckNote, error) {
	if content == "" {
		return nil, ErrValidation
	}
	if _, err := s.Get(companyID, truckID); err != nil {
		return nil, err
	}

	note := models.TruckNote{
		ID:        uuid.New(),
		CompanyID: companyID,
		TruckID:   truckID,
		AuthorID:  authorID,
		Content:   content,
	}
	if err := s.db.Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *TruckService) ListNotes(companyID, truckID uuid.UUID) ([]models.TruckNote, error) {
	if _, err := s.Get(companyID, truckID); err != nil {
		return nil, err
	}

	var notes []models.TruckNote
	err := s.db.Scopes(tenant.ForCompany(companyID)).
		Where("truck_id = ?", truckID).
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}

func (s *TruckService) DeleteNote(companyID, noteID uuid.UUID) error {
	res := s.db.Scopes(tenant.ForCompany(companyID)).
		Where("id = ?", noteID).
		Delete(&models.TruckNote{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
