package diagnostic

import "sort"

// autoCiteThreshold is the similarity above which a retrieved chunk is
// included even when the model did not cite it.
const autoCiteThreshold = 0.70

// EnrichCitations maps model citations back to the retrieved chunks and
// appends any high-similarity chunk the model skipped. Citations whose
// source_index matches no retrieved chunk are dropped; the result is
// de-duplicated by source index.
func EnrichCitations(raw []Citation, chunks []RetrievedChunk) []Citation {
	byIndex := make(map[int]RetrievedChunk, len(chunks))
	for _, chunk := range chunks {
		byIndex[chunk.SourceIndex] = chunk
	}

	seen := make(map[int]bool, len(raw))
	enriched := make([]Citation, 0, len(raw))

	for _, c := range raw {
		chunk, ok := byIndex[c.SourceIndex]
		if !ok || seen[c.SourceIndex] {
			continue
		}
		seen[c.SourceIndex] = true
		enriched = append(enriched, Citation{
			SourceIndex: c.SourceIndex,
			Title:       chunk.Title,
			Relevance:   c.Relevance,
			Similarity:  chunk.Similarity,
			DocumentID:  chunk.DocumentID.String(),
		})
	}

	var extra []Citation
	for _, chunk := range chunks {
		if seen[chunk.SourceIndex] || chunk.Similarity < autoCiteThreshold {
			continue
		}
		seen[chunk.SourceIndex] = true
		extra = append(extra, Citation{
			SourceIndex: chunk.SourceIndex,
			Title:       chunk.Title,
			Relevance:   "high similarity match",
			Similarity:  chunk.Similarity,
			DocumentID:  chunk.DocumentID.String(),
		})
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].SourceIndex < extra[j].SourceIndex })

	return append(enriched, extra...)
}
