package diagnostic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Retriever finds corpus chunks similar to a query embedding. companyID
// nil means no company filter (global corpus only has NULL company rows,
// so the scope degenerates to the shared documents).
type Retriever interface {
	Retrieve(embedding []float32, companyID *uuid.UUID, k int, threshold float64) ([]RetrievedChunk, error)
}

// PGRetriever runs cosine-similarity search against the pgvector column
// on document_chunks.
type PGRetriever struct {
	db *gorm.DB
}

func NewPGRetriever(db *gorm.DB) *PGRetriever {
	return &PGRetriever{db: db}
}

type chunkRow struct {
	DocumentID uuid.UUID
	Title      string
	Content    string
	Similarity float64
}

func (r *PGRetriever) Retrieve(embedding []float32, companyID *uuid.UUID, k int, threshold float64) ([]RetrievedChunk, error) {
	vec := VectorLiteral(embedding)

	query := `
		SELECT dc.document_id,
		       COALESCE(d.title, '') AS title,
		       dc.content,
		       1 - (dc.embedding <=> ?::vector) AS similarity
		FROM document_chunks dc
		LEFT JOIN documents d ON d.id = dc.document_id
		WHERE (dc.company_id IS NULL` + companyClause(companyID) + `)
		  AND 1 - (dc.embedding <=> ?::vector) >= ?
		ORDER BY dc.embedding <=> ?::vector
		LIMIT ?`

	args := []interface{}{vec}
	if companyID != nil {
		args = append(args, *companyID)
	}
	args = append(args, vec, threshold, vec, k)

	var rows []chunkRow
	if err := r.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	chunks := make([]RetrievedChunk, len(rows))
	for i, row := range rows {
		chunks[i] = RetrievedChunk{
			SourceIndex: i + 1,
			DocumentID:  row.DocumentID,
			Title:       row.Title,
			Content:     row.Content,
			Similarity:  row.Similarity,
		}
	}
	return chunks, nil
}

func companyClause(companyID *uuid.UUID) string {
	if companyID == nil {
		return ""
	}
	return " OR dc.company_id = ?"
}

// VectorLiteral renders an embedding as a pgvector input literal.
func VectorLiteral(embedding []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range embedding {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
