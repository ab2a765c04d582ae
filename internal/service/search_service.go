package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	gocache "github.com/patrickmn/go-cache"

	"ai-learndocs-be/internal/dto"
	"ai-learndocs-be/pkg/embedding"
	"ai-learndocs-be/pkg/vectorstore"
)

const (
	queryCacheTTL     = 5 * time.Minute
	queryCacheSweep   = 10 * time.Minute
	defaultSearchTopK = 5
)

type ISearchService interface {
	Search(ctx context.Context, req *dto.SearchRequest) ([]*dto.SearchResult, error)
}

// searchService retrieves supporting passages for the question-answering
// layer. Query embeddings are cached briefly: chat sessions tend to repeat
// the same question text while a user refines an answer.
type searchService struct {
	store      *vectorstore.Resilient
	chain      *embedding.Chain
	queryCache *gocache.Cache
	validate   *validator.Validate
}

func NewSearchService(store *vectorstore.Resilient, chain *embedding.Chain) ISearchService {
	return &searchService{
		store:      store,
		chain:      chain,
		queryCache: gocache.New(queryCacheTTL, queryCacheSweep),
		validate:   validator.New(),
	}
}

func (s *searchService) Search(ctx context.Context, req *dto.SearchRequest) ([]*dto.SearchResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchTopK
	}

	vector, err := s.queryVector(req.Query)
	if err != nil {
		return nil, err
	}

	records, err := s.store.Search(ctx, vector, req.DocumentId, limit)
	if err != nil {
		return nil, err
	}

	results := make([]*dto.SearchResult, len(records))
	for i, rec := range records {
		results[i] = &dto.SearchResult{
			DocumentId: rec.DocumentId,
			ChunkIndex: rec.ChunkIndex,
			Content:    rec.Content,
			Similarity: rec.Similarity,
		}
	}
	return results, nil
}

func (s *searchService) queryVector(query string) ([]float32, error) {
	if cached, ok := s.queryCache.Get(query); ok {
		return cached.([]float32), nil
	}

	res, err := s.chain.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, err
	}

	s.queryCache.Set(query, res.Embedding.Values, gocache.DefaultExpiration)
	return res.Embedding.Values, nil
}
