package diagnostic

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestComposePromptIncludesAllEvidence(t *testing.T) {
	t.Parallel()

	v := VehicleInfo{Make: "Kenworth", Model: "T680", Year: 2020, Engine: "X15"}
	chunks := []RetrievedChunk{
		{SourceIndex: 1, DocumentID: uuid.New(), Title: "X15 Fuel System Bulletin", Content: "Check the lift pump.", Similarity: 0.91},
	}

	prompt := ComposePrompt(v, "hard start when cold", []string{"SPN 94"}, "user: cranks long\nassistant: check fuel pressure", chunks)

	require.Contains(t, prompt, "Kenworth")
	require.Contains(t, prompt, "T680")
	require.Contains(t, prompt, "2020")
	require.Contains(t, prompt, "X15")
	require.Contains(t, prompt, "hard start when cold")
	require.Contains(t, prompt, "SPN 94")
	require.Contains(t, prompt, "Prior Diagnostic Conversation")
	require.Contains(t, prompt, "assistant: check fuel pressure")
	require.Contains(t, prompt, "[Source 1] X15 Fuel System Bulletin")
	require.Contains(t, prompt, "Check the lift pump.")
}

func TestComposePromptOmitsEmptySections(t *testing.T) {
	t.Parallel()

	prompt := ComposePrompt(VehicleInfo{}, "", nil, "", nil)
	require.Contains(t, prompt, "(none provided)")
	require.Contains(t, prompt, "(none recorded)")
	require.NotContains(t, prompt, "Prior Diagnostic Conversation")
	require.NotContains(t, prompt, "Reference Documents")
}

func TestComposePromptDeterministic(t *testing.T) {
	t.Parallel()

	v := VehicleInfo{Make: "Mack", Model: "Anthem", Year: 2022, Engine: "MP8"}
	chunks := []RetrievedChunk{
		{SourceIndex: 1, Title: "A", Content: "a", Similarity: 0.8},
		{SourceIndex: 2, Title: "B", Content: "b", Similarity: 0.5},
	}
	first := ComposePrompt(v, "vibration at speed", []string{"C123"}, "user: hi", chunks)
	require.Equal(t, first, ComposePrompt(v, "vibration at speed", []string{"C123"}, "user: hi", chunks))
}

func TestSystemPromptRequestsFixedShape(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"diagnostic_summary", "probable_root_cause", "recommended_repair_steps", "safety_notes", "citations", "source_index"} {
		require.Contains(t, systemPrompt, key)
	}
}
