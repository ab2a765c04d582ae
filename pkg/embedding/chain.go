package embedding

import (
	"errors"
	"sync"
)

// Chain tries an ordered list of credentials for the primary provider,
// rotating to the next one whenever a call comes back rate limited. The
// rotation pointer is shared across all callers and guarded by a mutex so
// concurrent batch embedding stays safe. A Chain is itself an
// EmbeddingProvider.
type Chain struct {
	mu        sync.Mutex
	providers []EmbeddingProvider
	current   int
}

func NewChain(providers ...EmbeddingProvider) *Chain {
	return &Chain{providers: providers}
}

// NewGeminiChain builds a chain with one Gemini provider per API key.
func NewGeminiChain(apiKeys []string) *Chain {
	providers := make([]EmbeddingProvider, 0, len(apiKeys))
	for _, key := range apiKeys {
		if key == "" {
			continue
		}
		providers = append(providers, NewGeminiProvider(key))
	}
	return NewChain(providers...)
}

func (c *Chain) pick() EmbeddingProvider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.providers[c.current]
}

func (c *Chain) advance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = (c.current + 1) % len(c.providers)
}

// Generate tries at most once per credential. Rate limits rotate the
// pointer and retry; any other error is returned as-is. When every
// credential is rate limited the call fails with ErrProviderExhausted.
func (c *Chain) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	if len(c.providers) == 0 {
		return nil, ErrProviderExhausted
	}

	for attempt := 0; attempt < len(c.providers); attempt++ {
		res, err := c.pick().Generate(text, taskType)
		if err == nil {
			return res, nil
		}

		var rateLimited *RateLimitError
		if errors.As(err, &rateLimited) {
			c.advance()
			continue
		}
		return nil, err
	}

	return nil, ErrProviderExhausted
}

// BatchItem is the outcome of embedding one text in a batch.
type BatchItem struct {
	Vector []float32
	Err    error
}

// GenerateBatch embeds every text concurrently and joins all results.
// Failures are isolated per item; a slow or rate-limited text never blocks
// or invalidates its siblings.
func (c *Chain) GenerateBatch(texts []string, taskType string) []BatchItem {
	items := make([]BatchItem, len(texts))

	var wg sync.WaitGroup
	for i, text := range texts {
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			res, err := c.Generate(text, taskType)
			if err != nil {
				items[i].Err = err
				return
			}
			items[i].Vector = res.Embedding.Values
		}(i, text)
	}
	wg.Wait()

	return items
}
