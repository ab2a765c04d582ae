package dto

import (
	"github.com/google/uuid"

	"ai-learndocs-be/internal/entity"
)

// ProcessDocumentMessage is the queue payload that triggers one pipeline run.
type ProcessDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}

// ProcessDocumentRequest drives one ingestion run.
type ProcessDocumentRequest struct {
	DocumentId uuid.UUID `validate:"required"`
	FilePath   string    `validate:"required"`
	FileType   string    `validate:"required"`
}

// ProcessDocumentResponse is the best-effort full result of a run. Chunks
// are populated even when some or all embeddings are missing.
type ProcessDocumentResponse struct {
	Text     string
	Chunks   []*entity.Chunk
	Metadata *entity.DocumentMetadata
}

// SearchRequest retrieves supporting passages for a question.
type SearchRequest struct {
	Query      string     `json:"query" validate:"required"`
	DocumentId *uuid.UUID `json:"document_id,omitempty"`
	Limit      int        `json:"limit"`
}

type SearchResult struct {
	DocumentId uuid.UUID `json:"document_id"`
	ChunkIndex int       `json:"chunk_index"`
	Content    string    `json:"content"`
	Similarity float64   `json:"similarity"`
}
