package dto

import (
	"github.com/google/uuid"

	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/diagnostic"
)

type GenerateDiagnosticRequest struct {
	WorkOrderID         uuid.UUID              `json:"work_order_id"`
	VehicleInfo         diagnostic.VehicleInfo `json:"vehicle_info"`
	Complaint           string                 `json:"complaint"`
	FaultCodes          []string               `json:"fault_codes"`
	ConversationHistory string                 `json:"conversation_history"`
}
