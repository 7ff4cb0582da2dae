package services

import (
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/models"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PMTemplateService struct {
	db *gorm.DB
}

func NewPMTemplateService(db *gorm.DB) *PMTemplateService {
	return &PMTemplateService{db: db}
}

func (s *PMTemplateService) Create(companyID uuid.UUID, req *dto.CreatePMTemplateRequest) (*models.PMTemplate, error) {
	if req.Name == "" {
		return nil, ErrValidation
	}
	if req.IntervalMiles < 0 || req.IntervalDays < 0 {
		return nil, ErrValidation
	}

	tmpl := models.PMTemplate{
		ID:            uuid.New(),
		CompanyID:     companyID,
		Name:          req.Name,
		Description:   req.Description,
		IntervalMiles: req.IntervalMiles,
		IntervalDays:  req.IntervalDays,
		Checklist:     req.Checklist,
	}
	if len(tmpl.Checklist) == 0 {
		tmpl.Checklist = []byte("[]")
	}
	if err := s.db.Create(&tmpl).Error; err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (s *PMTemplateService) Get(companyID, templateID uuid.UUID) (*models.PMTemplate, error) {
	var tmpl models.PMTemplate
	err := s.db.Scopes(tenant.ForCompany(companyID)).
		First(&tmpl, "id = ?", templateID).Error
	if err != nil {
		return nil, ErrNotFound
	}
	return &tmpl, nil
}

func (s *PMTemplateService) List(companyID uuid.UUID, limit, offset int) (*dto.ListResponse, error) {
	limit, offset = clampPage(limit, offset)

	q := s.db.Model(&models.PMTemplate{}).Scopes(tenant.ForCompany(companyID))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var templates []models.PMTemplate
	if err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&templates).Error; err != nil {
		return nil, err
	}

	return &dto.ListResponse{Items: templates, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *PMTemplateService) Update(companyID, templateID uuid.UUID, req *dto.UpdatePMTemplateRequest) (*models.PMTemplate, error) {
	tmpl, err := s.Get(companyID, templateID)
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
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IntervalMiles != nil {
		if *req.IntervalMiles < 0 {
			return nil, ErrValidation
		}
		updates["interval_miles"] = *req.IntervalMiles
	}
	if req.IntervalDays != nil {
		if *req.IntervalDays < 0 {
			return nil, ErrValidation
		}
		updates["interval_days"] = *req.IntervalDays
	}
	if req.Checklist != nil {
		updates["checklist"] = *req.Checklist
	}

	if len(updates) > 0 {
		if err := s.db.Model(tmpl).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(companyID, templateID)
}

func (s *PMTemplateService) Delete(companyID, templateID uuid.UUID) error {
	tmpl, err := s.Get(companyID, templateID)
	if err != nil {
		return err
	}
	return s.db.Delete(tmpl).Error
}
