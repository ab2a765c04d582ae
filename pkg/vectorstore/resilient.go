package vectorstore

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"ai-learndocs-be/pkg/embedding"
)

// ProbeTimeout bounds the connectivity check against the external database.
const ProbeTimeout = 3 * time.Second

// Resilient fronts the external vector database with an in-process
// fallback. The mode is decided once: if the connectivity probe fails, the
// store runs on the MemStore for the rest of the process lifetime.
type Resilient struct {
	primary  Store
	fallback *MemStore
	embedder embedding.EmbeddingProvider

	mu           sync.Mutex
	fallbackMode bool
}

// NewResilient wraps primary. The embedder turns raw query text into
// vectors comparable with stored chunks (same chain as ingestion).
func NewResilient(primary Store, embedder embedding.EmbeddingProvider) *Resilient {
	return &Resilient{
		primary:  primary,
		fallback: NewMemStore(),
		embedder: embedder,
	}
}

// Connect probes the external database with a fixed short timeout. Any
// failure switches to fallback mode permanently, logged once.
func (r *Resilient) Connect(ctx context.Context) error {
	if r.primary == nil {
		r.setFallback("no external vector database configured")
		return nil
	}

	probeCtx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	if err := r.primary.Connect(probeCtx); err != nil {
		r.setFallback(err.Error())
	}
	return nil
}

func (r *Resilient) setFallback(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.fallbackMode {
		r.fallbackMode = true
		log.Printf("[WARN] vector store unreachable, using in-process fallback for process lifetime: %s", reason)
	}
}

// FallbackMode reports whether the store switched to the in-process scan.
func (r *Resilient) FallbackMode() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fallbackMode
}

func (r *Resilient) active() Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fallbackMode {
		return r.fallback
	}
	return r.primary
}

func (r *Resilient) StoreChunks(ctx context.Context, documentId uuid.UUID, records []Record) error {
	return r.active().StoreChunks(ctx, documentId, records)
}

func (r *Resilient) Search(ctx context.Context, query []float32, documentId *uuid.UUID, limit int) ([]Record, error) {
	return r.active().Search(ctx, query, documentId, limit)
}

// SearchText embeds raw query text through the same provider chain used at
// ingestion, then searches. Query and stored vectors stay comparable.
func (r *Resilient) SearchText(ctx context.Context, text string, documentId *uuid.UUID, limit int) ([]Record, error) {
	res, err := r.embedder.Generate(text, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, err
	}
	return r.Search(ctx, res.Embedding.Values, documentId, limit)
}

func (r *Resilient) DeleteChunks(ctx context.Context, documentId uuid.UUID) error {
	return r.active().DeleteChunks(ctx, documentId)
}
