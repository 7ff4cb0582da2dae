package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is a technical manual or bulletin in the diagnostic corpus.
// CompanyID is nil for documents shared across all companies.
type Document struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID *uuid.UUID `gorm:"type:uuid;index" json:"company_id"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Source    string     `gorm:"size:255" json:"source"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// DocumentChunk is one embedded text chunk. Embedding is a pgvector
// column; similarity search goes through raw SQL, GORM only migrates it.
type DocumentChunk struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DocumentID uuid.UUID  `gorm:"type:uuid;not null;index" json:"document_id"`
	CompanyID  *uuid.UUID `gorm:"type:uuid;index" json:"company_id"`
	ChunkIndex int        `gorm:"not null" json:"chunk_index"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	Embedding  string     `gorm:"type:vector(1536)" json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
}
