package services

import (
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/models"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

func (s *CustomerService) Create(companyID uuid.UUID, req *dto.CreateCustomerRequest) (*models.Customer, error) {
	if req.Name == "" {
		return nil, ErrValidation
	}

	customer := models.Customer{
		ID:           uuid.New(),
		CompanyID:    companyID,
		Name:         req.Name,
		ContactName:  req.ContactName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Zip:          req.Zip,
		BillingEmail: req.BillingEmail,
		Notes:        req.Notes,
	}
	if err := s.db.Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *CustomerService) Get(companyID, customerID uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.Scopes(tenant.ForCompany(companyID)).
		First(&customer, "id = ?", customerID).Error
	if err != nil {
		return nil, ErrNotFound
	}
	return &customer, nil
}

// List returns customers for the company, newest first. search matches
// name or contact name, case-insensitive.
func (s *CustomerService) List(companyID uuid.UUID, search string, limit, offset int) (*dto.ListResponse, error) {
	limit, offset = clampPage(limit, offset)

	q := s.db.Model(&models.Customer{}).Scopes(tenant.ForCompany(companyID))
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("name ILIKE ? OR contact_name ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var customers []models.Customer
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&customers).Error; err != nil {
		return nil, err
	}

	return &dto.ListResponse{Items: customers, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *CustomerService) Update(companyID, customerID uuid.UUID, req *dto.UpdateCustomerRequest) (*models.Customer, error) {
	customer, err := s.Get(companyID, customerID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrValidation
		}
		updates["name"] = *req.Name
	}
	if req.ContactName != nil {
		updates["contact_name"] = *req.ContactName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.Zip != nil {
		updates["zip"] = *req.Zip
	}
	if req.BillingEmail != nil {
		updates["billing_email"] = *req.BillingEmail
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(customer).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(companyID, customerID)
}

// Delete removes the customer and cascades over its trucks: each truck
// goes through the same teardown as a direct truck delete before the
// customer row itself is removed.
func (s *CustomerService) Delete(companyID, customerID uuid.UUID) error {
	customer, err := s.Get(companyID, customerID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var truckIDs []uuid.UUID
		if err := tx.Model(&models.Truck{}).
			Where("customer_id = ?", customerID).
			Pluck("id", &truckIDs).Error; err != nil {
			return err
		}
		if err := deleteTruckTree(tx, truckIDs); err != nil {
			return err
		}
		return tx.Delete(customer).Error
	})
}
