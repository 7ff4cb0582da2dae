package diagnostic

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a heavy-duty diesel diagnostic assistant for fleet maintenance shops. ` +
	`Using the evidence provided, produce a diagnostic report as a JSON object with exactly these keys: ` +
	`"diagnostic_summary" (string), "probable_root_cause" (string), ` +
	`"recommended_repair_steps" (array of strings, ordered), "safety_notes" (string), ` +
	`"citations" (array of {"source_index": number, "title": string, "relevance": string}). ` +
	`Cite reference documents by their [Source N] index. Respond with JSON only.`

// ComposePrompt assembles all evidence into the user message. The layout
// is fixed so identical inputs always produce an identical prompt.
func ComposePrompt(v VehicleInfo, complaint string, faultCodes []string, chatHistory string, chunks []RetrievedChunk) string {
	var b strings.Builder

	b.WriteString("## Vehicle\n")
	fmt.Fprintf(&b, "Make: %s\nModel: %s\nYear: %d\nEngine: %s\n", v.Make, v.Model, v.Year, v.Engine)

	b.WriteString("\n## Customer Complaint\n")
	if complaint != "" {
		b.WriteString(complaint)
	} else {
		b.WriteString("(none provided)")
	}
	b.WriteString("\n")

	b.WriteString("\n## Fault Codes\n")
	if len(faultCodes) > 0 {
		b.WriteString(strings.Join(faultCodes, ", "))
	} else {
		b.WriteString("(none recorded)")
	}
	b.WriteString("\n")

	if chatHistory != "" {
		b.WriteString("\n## Prior Diagnostic Conversation\n")
		b.WriteString(chatHistory)
		b.WriteString("\n")
	}

	if len(chunks) > 0 {
		b.WriteString("\n## Reference Documents\n")
		for _, chunk := range chunks {
			fmt.Fprintf(&b, "[Source %d] %s (similarity %.2f)\n%s\n\n", chunk.SourceIndex, chunk.Title, chunk.Similarity, chunk.Content)
		}
	}

	b.WriteString("\nProduce the diagnostic report JSON now.")
	return b.String()
}
