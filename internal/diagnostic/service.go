package diagnostic

import (
	"encoding/json"
	"log/slog"

	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/ai"
)

// Service runs the embed → retrieve → generate pipeline. Every provider
// failure degrades to a placeholder report: callers always receive a
// well-formed Result, never an error.
type Service struct {
	llm       ai.Client
	retriever Retriever
	history   HistoryLoader
	topK      int
	threshold float64
}

func NewService(llm ai.Client, retriever Retriever, history HistoryLoader, topK int, threshold float64) *Service {
	if topK <= 0 {
		topK = 6
	}
	return &Service{
		llm:       llm,
		retriever: retriever,
		history:   history,
		topK:      topK,
		threshold: threshold,
	}
}

// GenerateReport executes the full pipeline for one request.
func (s *Service) GenerateReport(req Request) Result {
	var chunks []RetrievedChunk

	query := BuildSearchQuery(req.Vehicle, req.FaultCodes, req.Complaint)
	if query != "" {
		embedding, err := s.llm.Embed(query)
		if err != nil {
			slog.Error("diagnostic embedding failed", "work_order_id", req.WorkOrderID, "error", err)
			return fallbackResult()
		}

		chunks, err = s.retriever.Retrieve(embedding, req.CompanyID, s.topK, s.threshold)
		if err != nil {
			slog.Error("diagnostic retrieval failed", "work_order_id", req.WorkOrderID, "error", err)
			return fallbackResult()
		}
	}

	history := req.ConversationHistory
	if history == "" && s.history != nil {
		loaded, err := s.history.LoadConversationHistory(req.WorkOrderID)
		if err != nil {
			// transcript is auxiliary evidence, keep going without it
			slog.Warn("diagnostic history load failed", "work_order_id", req.WorkOrderID, "error", err)
		} else {
			history = loaded
		}
	}

	prompt := ComposePrompt(req.Vehicle, req.Complaint, req.FaultCodes, history, chunks)

	content, err := s.llm.CompleteJSON(systemPrompt, prompt)
	if err != nil {
		slog.Error("diagnostic generation failed", "work_order_id", req.WorkOrderID, "error", err)
		return fallbackResult()
	}

	var report Report
	if err := json.Unmarshal([]byte(content), &report); err != nil {
		slog.Error("diagnostic response parse failed", "work_order_id", req.WorkOrderID, "error", err)
		return fallbackResult()
	}
	if report.DiagnosticSummary == "" || len(report.RecommendedRepairSteps) == 0 {
		slog.Error("diagnostic response incomplete", "work_order_id", req.WorkOrderID)
		return fallbackResult()
	}

	report.Citations = EnrichCitations(report.Citations, chunks)
	if report.Citations == nil {
		report.Citations = []Citation{}
	}

	return Result{Report: report}
}

func fallbackResult() Result {
	return Result{
		Fallback: true,
		Report: Report{
			DiagnosticSummary: "The diagnostic report could not be generated automatically. " +
				"A technician should review the complaint and fault codes manually.",
			ProbableRootCause: "Undetermined. Manual diagnosis required.",
			RecommendedRepairSteps: []string{
				"Review the customer complaint and recorded fault codes.",
				"Perform a visual inspection of the affected systems.",
				"Consult the OEM service manual for the active fault codes.",
			},
			SafetyNotes: "Follow standard shop safety procedures before servicing the vehicle.",
			Citations:   []Citation{},
		},
	}
}
