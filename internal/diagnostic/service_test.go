package diagnostic

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	embedFn    func(text string) ([]float32, error)
	completeFn func(system, user string) (string, error)
}

func (s *stubLLM) Embed(text string) ([]float32, error) {
	if s.embedFn == nil {
		panic("embedFn not configured")
	}
	return s.embedFn(text)
}

func (s *stubLLM) CompleteJSON(system, user string) (string, error) {
	if s.completeFn == nil {
		panic("completeFn not configured")
	}
	return s.completeFn(system, user)
}

type stubRetriever struct {
	retrieveFn func(embedding []float32, companyID *uuid.UUID, k int, threshold float64) ([]RetrievedChunk, error)
}

func (s *stubRetriever) Retrieve(embedding []float32, companyID *uuid.UUID, k int, threshold float64) ([]RetrievedChunk, error) {
	if s.retrieveFn == nil {
		panic("retrieveFn not configured")
	}
	return s.retrieveFn(embedding, companyID, k, threshold)
}

type stubHistory struct {
	history string
	err     error
}

func (s *stubHistory) LoadConversationHistory(workOrderID uuid.UUID) (string, error) {
	return s.history, s.err
}

func testRequest() Request {
	return Request{
		WorkOrderID: uuid.New(),
		Vehicle:     VehicleInfo{Make: "Freightliner", Model: "Cascadia", Year: 2019, Engine: "DD15"},
		Complaint:   "derates under load",
		FaultCodes:  []string{"SPN 3216"},
	}
}

func requireFallback(t *testing.T, res Result) {
	t.Helper()
	require.True(t, res.Fallback)
	require.NotEmpty(t, res.Report.DiagnosticSummary)
	require.Contains(t, res.Report.DiagnosticSummary, "could not be generated automatically")
	require.NotEmpty(t, res.Report.RecommendedRepairSteps)
	require.NotNil(t, res.Report.Citations)
	require.Empty(t, res.Report.Citations)
}

func TestGenerateReportSuccess(t *testing.T) {
	t.Parallel()

	docID := uuid.New()
	llm := &stubLLM{
		embedFn: func(text string) ([]float32, error) {
			require.Contains(t, text, "Cascadia")
			return []float32{0.1, 0.2}, nil
		},
		completeFn: func(system, user string) (string, error) {
			require.Contains(t, user, "[Source 1]")
			return `{
				"diagnostic_summary": "EGR cooler fouling causing NOx efficiency derate.",
				"probable_root_cause": "Clogged EGR cooler.",
				"recommended_repair_steps": ["Scan for active codes", "Inspect EGR cooler"],
				"safety_notes": "Allow exhaust to cool before inspection.",
				"citations": [{"source_index": 1, "title": "wrong title from model", "relevance": "describes the derate"}]
			}`, nil
		},
	}
	retriever := &stubRetriever{
		retrieveFn: func(embedding []float32, companyID *uuid.UUID, k int, threshold float64) ([]RetrievedChunk, error) {
			require.Equal(t, []float32{0.1, 0.2}, embedding)
			require.Equal(t, 6, k)
			return []RetrievedChunk{
				{SourceIndex: 1, DocumentID: docID, Title: "DD15 Aftertreatment Guide", Similarity: 0.88},
			}, nil
		},
	}

	svc := NewService(llm, retriever, &stubHistory{}, 6, 0.3)
	res := svc.GenerateReport(testRequest())

	require.False(t, res.Fallback)
	require.Equal(t, "EGR cooler fouling causing NOx efficiency derate.", res.Report.DiagnosticSummary)
	require.Len(t, res.Report.Citations, 1)
	// enrichment overwrites the model's title with the real document title
	require.Equal(t, "DD15 Aftertreatment Guide", res.Report.Citations[0].Title)
	require.Equal(t, docID.String(), res.Report.Citations[0].DocumentID)
}

func TestGenerateReportEmbedFailure(t *testing.T) {
	t.Parallel()

	llm := &stubLLM{
		embedFn: func(string) ([]float32, error) { return nil, errors.New("provider down") },
	}
	svc := NewService(llm, &stubRetriever{}, nil, 6, 0.3)
	requireFallback(t, svc.GenerateReport(testRequest()))
}

func TestGenerateReportRetrievalFailure(t *testing.T) {
	t.Parallel()

	llm := &stubLLM{
		embedFn: func(string) ([]float32, error) { return []float32{0.1}, nil },
	}
	retriever := &stubRetriever{
		retrieveFn: func([]float32, *uuid.UUID, int, float64) ([]RetrievedChunk, error) {
			return nil, errors.New("rpc failed")
		},
	}
	svc := NewService(llm, retriever, nil, 6, 0.3)
	requireFallback(t, svc.GenerateReport(testRequest()))
}

func TestGenerateReportCompletionFailure(t *testing.T) {
	t.Parallel()

	llm := &stubLLM{
		embedFn:    func(string) ([]float32, error) { return []float32{0.1}, nil },
		completeFn: func(string, string) (string, error) { return "", errors.New("model overloaded") },
	}
	retriever := &stubRetriever{
		retrieveFn: func([]float32, *uuid.UUID, int, float64) ([]RetrievedChunk, error) { return nil, nil },
	}
	svc := NewService(llm, retriever, nil, 6, 0.3)
	requireFallback(t, svc.GenerateReport(testRequest()))
}

func TestGenerateReportParseFailure(t *testing.T) {
	t.Parallel()

	llm := &stubLLM{
		embedFn:    func(string) ([]float32, error) { return []float32{0.1}, nil },
		completeFn: func(string, string) (string, error) { return "sorry, I can't do that", nil },
	}
	retriever := &stubRetriever{
		retrieveFn: func([]float32, *uuid.UUID, int, float64) ([]RetrievedChunk, error) { return nil, nil },
	}
	svc := NewService(llm, retriever, nil, 6, 0.3)
	requireFallback(t, svc.GenerateReport(testRequest()))
}

func TestGenerateReportEmptyQuerySkipsRetrieval(t *testing.T) {
	t.Parallel()

	llm := &stubLLM{
		completeFn: func(system, user string) (string, error) {
			return `{"diagnostic_summary":"General inspection advised.","probable_root_cause":"Insufficient evidence.","recommended_repair_steps":["Road test the vehicle"],"safety_notes":"","citations":[]}`, nil
		},
	}
	// retriever and embed must never be called when there is no query text
	svc := NewService(llm, &stubRetriever{}, &stubHistory{}, 6, 0.3)

	res := svc.GenerateReport(Request{WorkOrderID: uuid.New()})
	require.False(t, res.Fallback)
	require.Empty(t, res.Report.Citations)
}

func TestGenerateReportUsesRequestHistoryOverLoader(t *testing.T) {
	t.Parallel()

	var sawPrompt string
	llm := &stubLLM{
		embedFn: func(string) ([]float32, error) { return []float32{0.1}, nil },
		completeFn: func(system, user string) (string, error) {
			sawPrompt = user
			return `{"diagnostic_summary":"ok","probable_root_cause":"ok","recommended_repair_steps":["step"],"safety_notes":"","citations":[]}`, nil
		},
	}
	retriever := &stubRetriever{
		retrieveFn: func([]float32, *uuid.UUID, int, float64) ([]RetrievedChunk, error) { return nil, nil },
	}
	svc := NewService(llm, retriever, &stubHistory{history: "user: from loader"}, 6, 0.3)

	req := testRequest()
	req.ConversationHistory = "user: from request"
	svc.GenerateReport(req)

	require.Contains(t, sawPrompt, "from request")
	require.NotContains(t, sawPrompt, "from loader")
}

func TestGenerateReportHistoryFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	llm := &stubLLM{
		embedFn: func(string) ([]float32, error) { return []float32{0.1}, nil },
		completeFn: func(string, string) (string, error) {
			return `{"diagnostic_summary":"ok","probable_root_cause":"ok","recommended_repair_steps":["step"],"safety_notes":"","citations":[]}`, nil
		},
	}
	retriever := &stubRetriever{
		retrieveFn: func([]float32, *uuid.UUID, int, float64) ([]RetrievedChunk, error) { return nil, nil },
	}
	svc := NewService(llm, retriever, &stubHistory{err: errors.New("db down")}, 6, 0.3)

	res := svc.GenerateReport(testRequest())
	require.False(t, res.Fallback)
}

func TestVectorLiteral(t *testing.T) {
	t.Parallel()

	require.Equal(t, "[0.1,0.2,0.3]", VectorLiteral([]float32{0.1, 0.2, 0.3}))
	require.Equal(t, "[]", VectorLiteral(nil))
}
