package vectorstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemStore is the in-process fallback: a map keyed by document id with a
// linear cosine scan. Corpus sizes in fallback mode are small, so the scan
// is acceptable; this is a degraded path, not a scaling mechanism.
type MemStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID][]Record
}

func NewMemStore() *MemStore {
	return &MemStore{records: make(map[uuid.UUID][]Record)}
}

func (s *MemStore) Connect(ctx context.Context) error {
	return nil
}

func (s *MemStore) StoreChunks(ctx context.Context, documentId uuid.UUID, records []Record) error {
	stored := make([]Record, len(records))
	copy(stored, records)
	for i := range stored {
		stored[i].DocumentId = documentId
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Replace, never append: repeated stores for the same document must not
	// duplicate chunk indices.
	s.records[documentId] = stored
	return nil
}

func (s *MemStore) Search(ctx context.Context, query []float32, documentId *uuid.UUID, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 5
	}

	s.mu.RLock()
	var candidates []Record
	if documentId != nil {
		candidates = append(candidates, s.records[*documentId]...)
	} else {
		for _, recs := range s.records {
			candidates = append(candidates, recs...)
		}
	}
	s.mu.RUnlock()

	scored := make([]Record, 0, len(candidates))
	for _, rec := range candidates {
		if rec.Embedding == nil {
			continue
		}
		rec.Similarity = CosineSimilarity(query, rec.Embedding)
		scored = append(scored, rec)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func (s *MemStore) DeleteChunks(ctx context.Context, documentId uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, documentId)
	return nil
}

// Len reports the number of stored records, for tests and diagnostics.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, recs := range s.records {
		n += len(recs)
	}
	return n
}
