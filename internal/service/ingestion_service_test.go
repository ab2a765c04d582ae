package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-learndocs-be/internal/constant"
	"ai-learndocs-be/internal/dto"
	"ai-learndocs-be/pkg/analyzer"
	"ai-learndocs-be/pkg/chunker"
	"ai-learndocs-be/pkg/embedding"
	"ai-learndocs-be/pkg/extract"
)

// stubStrategy returns canned text regardless of the file on disk.
type stubStrategy struct {
	text string
	err  error
}

func (s *stubStrategy) Extract(filePath string) (string, error) {
	return s.text, s.err
}

// stubEmbedder is an EmbeddingProvider with a fixed response per call.
type stubEmbedder struct {
	vector []float32
	err    error
}

func (s *stubEmbedder) Generate(text, taskType string) (*embedding.EmbeddingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: s.vector},
	}, nil
}

func newTestIngestionService(t *testing.T, text string, embedErr error) IIngestionService {
	t.Helper()

	extractor := extract.NewExtractor()
	extractor.Register(extract.FileTypeText, &stubStrategy{text: text})

	chk, err := chunker.New(1000, 200)
	require.NoError(t, err)

	anl, err := analyzer.New(nil)
	require.NoError(t, err)

	chain := embedding.NewChain(&stubEmbedder{
		vector: []float32{0.1, 0.2, 0.3},
		err:    embedErr,
	})

	return NewIngestionService(extractor, chk, anl, chain)
}

func TestIngestionProcess(t *testing.T) {
	text := "Photosynthesis converts light energy into chemical energy. " +
		"Plants absorb carbon dioxide through their leaves. " +
		"The resulting glucose fuels growth."

	svc := newTestIngestionService(t, text, nil)

	resp, err := svc.Process(context.Background(), &dto.ProcessDocumentRequest{
		DocumentId: uuid.New(),
		FilePath:   "/uploads/photosynthesis.txt",
		FileType:   "txt",
	})
	require.NoError(t, err)

	assert.Equal(t, text, resp.Text)
	require.Len(t, resp.Chunks, 1)

	chunk := resp.Chunks[0]
	assert.Equal(t, text, chunk.Content)
	assert.NotEmpty(t, chunk.Embedding)
	assert.NotEmpty(t, chunk.Keywords)
	assert.NotEmpty(t, chunk.Summary)
	assert.Equal(t, 3, chunk.Metadata.SentenceCount)

	require.NotNil(t, resp.Metadata)
	assert.Equal(t, constant.EmbeddingMethodPrimary, resp.Metadata.EmbeddingMethod)
	assert.Equal(t, 1, resp.Metadata.ChunkCount)
	assert.Equal(t, "eng", resp.Metadata.Language)
	assert.Greater(t, resp.Metadata.WordCount, 0)
	assert.NotEmpty(t, resp.Metadata.Summary)
	assert.False(t, resp.Metadata.ProcessedAt.IsZero())
}

func TestIngestionProcessChunkContentIsExactSubstring(t *testing.T) {
	var text string
	for i := 0; i < 40; i++ {
		text += "Cell division produces two genetically identical daughter cells during mitosis. "
	}

	svc := newTestIngestionService(t, text, nil)

	resp, err := svc.Process(context.Background(), &dto.ProcessDocumentRequest{
		DocumentId: uuid.New(),
		FilePath:   "/uploads/mitosis.txt",
		FileType:   "txt",
	})
	require.NoError(t, err)
	require.Greater(t, len(resp.Chunks), 1)

	for _, chunk := range resp.Chunks {
		meta := chunk.Metadata
		assert.Equal(t, resp.Text[meta.Start:meta.End], chunk.Content)
		assert.Equal(t, meta.End-meta.Start, meta.Length)
	}
}

func TestIngestionProcessDegradedEmbeddings(t *testing.T) {
	svc := newTestIngestionService(t,
		"Volcanoes form where magma reaches the surface.",
		&embedding.RateLimitError{Provider: "gemini", Body: "quota"},
	)

	resp, err := svc.Process(context.Background(), &dto.ProcessDocumentRequest{
		DocumentId: uuid.New(),
		FilePath:   "/uploads/volcano.txt",
		FileType:   "txt",
	})
	require.NoError(t, err)

	// Chunks survive without vectors; the run is flagged, not failed.
	require.Len(t, resp.Chunks, 1)
	assert.Nil(t, resp.Chunks[0].Embedding)
	assert.Equal(t, constant.EmbeddingMethodDegraded, resp.Metadata.EmbeddingMethod)
}

func TestIngestionProcessEmptyDocumentFails(t *testing.T) {
	svc := newTestIngestionService(t, "   \n\t ", nil)

	_, err := svc.Process(context.Background(), &dto.ProcessDocumentRequest{
		DocumentId: uuid.New(),
		FilePath:   "/uploads/blank.txt",
		FileType:   "txt",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, extract.ErrEmptyContent)
}

func TestIngestionProcessUnsupportedFormat(t *testing.T) {
	svc := newTestIngestionService(t, "irrelevant", nil)

	_, err := svc.Process(context.Background(), &dto.ProcessDocumentRequest{
		DocumentId: uuid.New(),
		FilePath:   "/uploads/archive.zip",
		FileType:   "zip",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, extract.ErrUnsupportedFormat)
}

func TestIngestionProcessValidation(t *testing.T) {
	svc := newTestIngestionService(t, "text", nil)

	_, err := svc.Process(context.Background(), &dto.ProcessDocumentRequest{
		DocumentId: uuid.New(),
		FileType:   "txt",
	})
	assert.Error(t, err)
}
