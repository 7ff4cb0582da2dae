// Package diagnostic generates structured diagnostic reports for work
// orders from vehicle identity, fault codes, chat history, and a
// vector-indexed technical-document corpus.
package diagnostic

import "github.com/google/uuid"

type VehicleInfo struct {
	Make   string `json:"make"`
	Model  string `json:"model"`
	Year   int    `json:"year"`
	Engine string `json:"engine"`
}

// Request carries everything the pipeline needs. ConversationHistory is
// optional; when empty the latest chat session for the work order is
// loaded instead.
type Request struct {
	WorkOrderID         uuid.UUID
	CompanyID           *uuid.UUID
	Vehicle             VehicleInfo
	Complaint           string
	FaultCodes          []string
	ConversationHistory string
}

// RetrievedChunk is one corpus chunk returned by similarity search.
// SourceIndex is the 1-based position the chunk holds in the prompt
// context, which is what model citations refer back to.
type RetrievedChunk struct {
	SourceIndex int
	DocumentID  uuid.UUID
	Title       string
	Content     string
	Similarity  float64
}

type Citation struct {
	SourceIndex int     `json:"source_index"`
	Title       string  `json:"title"`
	Relevance   string  `json:"relevance"`
	Similarity  float64 `json:"similarity,omitempty"`
	DocumentID  string  `json:"document_id,omitempty"`
}

// Report is the fixed shape every caller receives, generated or not.
type Report struct {
	DiagnosticSummary      string     `json:"diagnostic_summary"`
	ProbableRootCause      string     `json:"probable_root_cause"`
	RecommendedRepairSteps []string   `json:"recommended_repair_steps"`
	SafetyNotes            string     `json:"safety_notes"`
	Citations              []Citation `json:"citations"`
}

// Result wraps the report with a flag telling the caller whether the
// content is generated or the degraded placeholder.
type Result struct {
	Report   Report `json:"report"`
	Fallback bool   `json:"fallback"`
}
