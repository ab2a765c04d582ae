package vectorstore

import (
	"context"
	"math"

	"github.com/google/uuid"
)

// Record is one stored chunk vector. Embedding is nil for chunks produced
// in degraded mode; those are persisted but never retrievable by search.
type Record struct {
	DocumentId uuid.UUID
	ChunkIndex int
	Content    string
	Embedding  []float32
	Similarity float64
}

// Store persists chunk vectors and retrieves nearest neighbors.
//
// StoreChunks is an upsert: any records previously stored for the document
// are replaced, so calling it twice with the same id never duplicates a
// chunk index.
type Store interface {
	Connect(ctx context.Context) error
	StoreChunks(ctx context.Context, documentId uuid.UUID, records []Record) error
	Search(ctx context.Context, query []float32, documentId *uuid.UUID, limit int) ([]Record, error)
	DeleteChunks(ctx context.Context, documentId uuid.UUID) error
}

// CosineSimilarity returns dot(a,b) / (|a|*|b|). Zero vectors and dimension
// mismatches score 0 rather than erroring, so a malformed record can never
// break a search.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
