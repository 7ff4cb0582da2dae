package services

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/diagnostic"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/dto"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/models"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiagnosticService fronts the report pipeline and records each exchange
// as chat messages on the work order, so the next run sees the
// transcript as conversation history.
type DiagnosticService struct {
	db       *gorm.DB
	pipeline *diagnostic.Service
}

func NewDiagnosticService(db *gorm.DB, pipeline *diagnostic.Service) *DiagnosticService {
	return &DiagnosticService{db: db, pipeline: pipeline}
}

// Generate runs the pipeline for a work order in the caller's company.
// The pipeline itself never fails; only an unknown work order is an
// error here.
func (s *DiagnosticService) Generate(companyID, userID uuid.UUID, req *dto.GenerateDiagnosticRequest) (*diagnostic.Result, error) {
	var order models.WorkOrder
	err := s.db.Scopes(tenant.ForCompany(companyID)).
		First(&order, "id = ?", req.WorkOrderID).Error
	if err != nil {
		return nil, ErrNotFound
	}

	result := s.pipeline.GenerateReport(diagnostic.Request{
		WorkOrderID:         order.ID,
		CompanyID:           &companyID,
		Vehicle:             req.VehicleInfo,
		Complaint:           req.Complaint,
		FaultCodes:          req.FaultCodes,
		ConversationHistory: req.ConversationHistory,
	})

	s.recordExchange(&order, userID, req.Complaint, &result)

	return &result, nil
}

// recordExchange appends the complaint and the generated report to the
// work order's chat session, creating one on first use. Persistence
// failure is logged, never surfaced: the caller already has the report.
func (s *DiagnosticService) recordExchange(order *models.WorkOrder, userID uuid.UUID, complaint string, result *diagnostic.Result) {
	if result.Fallback || complaint == "" {
		return
	}

	reply, err := json.Marshal(result.Report)
	if err != nil {
		slog.Error("diagnostic transcript encode failed", "work_order_id", order.ID.String(), "error", err)
		return
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var session models.ChatSession
		err := tx.Where("work_order_id = ?", order.ID).
			Order("created_at DESC").
			First(&session).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			session = models.ChatSession{
				ID:          uuid.New(),
				CompanyID:   order.CompanyID,
				WorkOrderID: order.ID,
				TruckID:     order.TruckID,
				UserID:      userID,
			}
			if err := tx.Create(&session).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		}

		messages := []models.ChatMessage{
			{ID: uuid.New(), SessionID: session.ID, Role: models.ChatRoleUser, Content: complaint},
			{ID: uuid.New(), SessionID: session.ID, Role: models.ChatRoleAssistant, Content: string(reply)},
		}
		return tx.Create(&messages).Error
	})
	if err != nil {
		slog.Error("diagnostic transcript persist failed", "work_order_id", order.ID.String(), "error", err)
	}
}
