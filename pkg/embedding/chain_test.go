package embedding

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

type scriptedProvider struct {
	name  string
	calls int32
	fn    func(call int32) (*EmbeddingResponse, error)
}

func (p *scriptedProvider) Generate(text, taskType string) (*EmbeddingResponse, error) {
	call := atomic.AddInt32(&p.calls, 1)
	return p.fn(call)
}

func vecResponse(v float32) *EmbeddingResponse {
	return &EmbeddingResponse{Embedding: EmbeddingResponseEmbedding{Values: []float32{v}}}
}

func alwaysRateLimited(name string) *scriptedProvider {
	return &scriptedProvider{name: name, fn: func(int32) (*EmbeddingResponse, error) {
		return nil, &RateLimitError{Provider: name, Body: "quota"}
	}}
}

func TestChainRotatesOnRateLimit(t *testing.T) {
	second := &scriptedProvider{fn: func(int32) (*EmbeddingResponse, error) {
		return vecResponse(2), nil
	}}
	chain := NewChain(alwaysRateLimited("first"), second)

	res, err := chain.Generate("hello", TaskRetrievalDocument)
	assert.NoError(t, err)
	assert.Equal(t, []float32{2}, res.Embedding.Values)

	// The pointer stays on the working credential for the next call.
	res, err = chain.Generate("again", TaskRetrievalDocument)
	assert.NoError(t, err)
	assert.Equal(t, []float32{2}, res.Embedding.Values)
	assert.EqualValues(t, 2, atomic.LoadInt32(&second.calls))
}

func TestChainExhaustsAllCredentials(t *testing.T) {
	first := alwaysRateLimited("first")
	second := alwaysRateLimited("second")
	chain := NewChain(first, second)

	_, err := chain.Generate("hello", TaskRetrievalDocument)
	assert.ErrorIs(t, err, ErrProviderExhausted)
	assert.EqualValues(t, 1, atomic.LoadInt32(&first.calls))
	assert.EqualValues(t, 1, atomic.LoadInt32(&second.calls))
}

func TestChainDoesNotRetryOtherErrors(t *testing.T) {
	broken := &scriptedProvider{fn: func(int32) (*EmbeddingResponse, error) {
		return nil, errors.New("invalid request")
	}}
	healthy := &scriptedProvider{fn: func(int32) (*EmbeddingResponse, error) {
		return vecResponse(1), nil
	}}
	chain := NewChain(broken, healthy)

	_, err := chain.Generate("hello", TaskRetrievalDocument)
	assert.EqualError(t, err, "invalid request")
	assert.EqualValues(t, 0, atomic.LoadInt32(&healthy.calls))
}

func TestChainEmpty(t *testing.T) {
	_, err := NewChain().Generate("hello", TaskRetrievalDocument)
	assert.ErrorIs(t, err, ErrProviderExhausted)
}

func TestGenerateBatchIsolatesFailures(t *testing.T) {
	var n int32
	flaky := &scriptedProvider{fn: func(int32) (*EmbeddingResponse, error) {
		if atomic.AddInt32(&n, 1)%2 == 0 {
			return nil, fmt.Errorf("transient upstream failure")
		}
		return vecResponse(7), nil
	}}
	chain := NewChain(flaky)

	items := chain.GenerateBatch([]string{"a", "b", "c", "d"}, TaskRetrievalDocument)
	assert.Len(t, items, 4)

	succeeded := 0
	for _, item := range items {
		if item.Err == nil {
			succeeded++
			assert.Equal(t, []float32{7}, item.Vector)
		} else {
			assert.Nil(t, item.Vector)
		}
	}
	assert.Equal(t, 2, succeeded)
}

func TestGenerateBatchAllExhausted(t *testing.T) {
	chain := NewChain(alwaysRateLimited("only"))

	items := chain.GenerateBatch([]string{"a", "b"}, TaskRetrievalDocument)
	for _, item := range items {
		assert.ErrorIs(t, item.Err, ErrProviderExhausted)
	}
}
