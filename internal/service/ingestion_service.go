package service

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"ai-learndocs-be/internal/constant"
	"ai-learndocs-be/internal/dto"
	"ai-learndocs-be/internal/entity"
	"ai-learndocs-be/pkg/analyzer"
	"ai-learndocs-be/pkg/chunker"
	"ai-learndocs-be/pkg/embedding"
	"ai-learndocs-be/pkg/extract"
)

// chunkKeywordCount and chunkSummarySentences bound the cheap per-chunk
// derivations; the rich LLM paths run only at document level.
const (
	chunkKeywordCount     = 5
	chunkSummarySentences = 1
)

type IIngestionService interface {
	Process(ctx context.Context, req *dto.ProcessDocumentRequest) (*dto.ProcessDocumentResponse, error)
}

// ingestionService composes extraction, chunking, analysis and embedding
// into one pipeline run per document. Vector storage is the caller's
// responsibility, so callers decide persistence policy (delete-then-store).
type ingestionService struct {
	extractor *extract.Extractor
	chunker   *chunker.Chunker
	analyzer  *analyzer.Analyzer
	chain     *embedding.Chain
	validate  *validator.Validate
}

func NewIngestionService(
	extractor *extract.Extractor,
	chk *chunker.Chunker,
	anl *analyzer.Analyzer,
	chain *embedding.Chain,
) IIngestionService {
	return &ingestionService{
		extractor: extractor,
		chunker:   chk,
		analyzer:  anl,
		chain:     chain,
		validate:  validator.New(),
	}
}

// Process fails only when the document cannot be read at all or contains no
// usable text. Everything downstream degrades instead of failing: chunks
// without embeddings are kept, analyzer fallbacks substitute silently.
func (s *ingestionService) Process(ctx context.Context, req *dto.ProcessDocumentRequest) (*dto.ProcessDocumentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	tracer := otel.Tracer("ingestion")
	ctx, span := tracer.Start(ctx, "document.process")
	defer span.End()
	span.SetAttributes(
		attribute.String("document.id", req.DocumentId.String()),
		attribute.String("document.file_type", req.FileType),
	)

	fileType, err := extract.ParseFileType(req.FileType)
	if err != nil {
		return nil, err
	}

	text, err := s.extractor.Extract(req.FilePath, fileType)
	if err != nil {
		return nil, err
	}

	chunks := s.chunker.Chunk(text)
	log.Printf("[INFO] Document %s: extracted %d bytes, %d chunks", req.DocumentId, len(text), len(chunks))

	// Metadata analysis runs concurrently with batch embedding; both are
	// joined before assembly.
	analysisCh := make(chan *analyzer.Analysis, 1)
	go func() {
		analysisCh <- s.analyzer.Analyze(ctx, text)
	}()

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Content
	}
	items := s.chain.GenerateBatch(texts, embedding.TaskRetrievalDocument)
	analysis := <-analysisCh

	method := constant.EmbeddingMethodPrimary
	failed := 0
	result := make([]*entity.Chunk, len(chunks))
	for i, ch := range chunks {
		c := &entity.Chunk{
			Content:  ch.Content,
			Keywords: analyzer.ExtractKeywordsFree(ch.Content, chunkKeywordCount),
			Summary:  s.analyzer.SummarizeFree(ch.Content, chunkSummarySentences),
			Metadata: entity.ChunkMetadata{
				Index:         ch.Index,
				Start:         ch.Start,
				End:           ch.End,
				Length:        ch.Length,
				SentenceCount: ch.SentenceCount,
			},
		}
		if items[i].Err != nil {
			// Chunk is retained without a vector; the run continues.
			failed++
		} else {
			c.Embedding = items[i].Vector
		}
		result[i] = c
	}
	if failed > 0 {
		method = constant.EmbeddingMethodDegraded
		log.Printf("[WARN] Document %s: %d/%d chunks embedded in degraded mode", req.DocumentId, failed, len(chunks))
	}

	metadata := &entity.DocumentMetadata{
		WordCount:       analysis.WordCount,
		ChunkCount:      len(result),
		Language:        analysis.Language,
		Subject:         analysis.Subject,
		Keywords:        analysis.Keywords,
		Summary:         analysis.Summary,
		Readability:     analysis.Readability,
		EmbeddingMethod: method,
		Degraded:        analysis.Degraded,
		ProcessedAt:     time.Now(),
	}

	return &dto.ProcessDocumentResponse{
		Text:     text,
		Chunks:   result,
		Metadata: metadata,
	}, nil
}
