package entity

import (
	"time"

	"github.com/google/uuid"

	"ai-learndocs-be/pkg/analyzer"
)

// ChunkMetadata locates a chunk inside the extracted text.
type ChunkMetadata struct {
	Index         int `json:"chunk_index"`
	Start         int `json:"start"`
	End           int `json:"end"`
	Length        int `json:"length"`
	SentenceCount int `json:"sentence_count"`
}

// Chunk is immutable once produced; ownership is exclusive to its document.
// Embedding is nil when every provider credential was exhausted.
type Chunk struct {
	Content   string
	Embedding []float32
	Keywords  []string
	Summary   string
	Metadata  ChunkMetadata
}

// DocumentMetadata is the per-document metadata bag persisted as JSON.
type DocumentMetadata struct {
	WordCount       int                  `json:"word_count"`
	ChunkCount      int                  `json:"chunk_count"`
	Language        string               `json:"language"`
	Subject         string               `json:"subject"`
	Keywords        []string             `json:"keywords"`
	Summary         string               `json:"summary"`
	Readability     analyzer.Readability `json:"readability"`
	EmbeddingMethod string               `json:"embedding_method"`
	Degraded        []string             `json:"degraded,omitempty"`
	ProcessedAt     time.Time            `json:"processed_at"`
}

type Document struct {
	Id              uuid.UUID
	Filename        string
	FileType        string
	FilePath        string
	ExtractedText   string
	Status          string
	ProcessingError string
	Metadata        *DocumentMetadata
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
