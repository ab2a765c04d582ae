package embedding

import (
	"errors"
	"fmt"
)

// Dimensions is fixed by the primary provider (Gemini text-embedding-004).
// The vector store schema and the fallback scan both assume it.
const Dimensions = 768

// Task types understood by the Gemini embedding API. Other providers ignore
// them but keep the same call shape.
const (
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// ErrProviderExhausted means every configured credential was tried and
// rate-limited. Callers keep the chunk without a vector and flag the
// document's embedding method as degraded.
var ErrProviderExhausted = errors.New("all embedding credentials exhausted")

// RateLimitError signals the provider chain to rotate to the next
// credential. Any other error is terminal for the call.
type RateLimitError struct {
	Provider string
	Body     string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited: %s", e.Provider, e.Body)
}

// EmbeddingProvider defines the interface for generating text embeddings.
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}

type EmbeddingResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding `json:"embedding"`
}
