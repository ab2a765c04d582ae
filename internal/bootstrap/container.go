package bootstrap

import (
	"fmt"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"

	"ai-learndocs-be/internal/config"
	"ai-learndocs-be/internal/pkg/logger"
	"ai-learndocs-be/internal/repository/contract"
	"ai-learndocs-be/internal/repository/implementation"
	"ai-learndocs-be/internal/service"
	"ai-learndocs-be/pkg/analyzer"
	"ai-learndocs-be/pkg/chunker"
	"ai-learndocs-be/pkg/embedding"
	"ai-learndocs-be/pkg/embedding/jina"
	"ai-learndocs-be/pkg/extract"
	"ai-learndocs-be/pkg/llm/factory"
	pktNats "ai-learndocs-be/pkg/nats"
	"ai-learndocs-be/pkg/vectorstore"
)

// Container wires the full dependency graph for the ingestion worker.
type Container struct {
	Logger             logger.ILogger
	DocumentRepository contract.DocumentRepository
	VectorStore        *vectorstore.Resilient
	PublisherService   service.IPublisherService
	ConsumerService    service.IConsumerService
	IngestionService   service.IIngestionService
	SearchService      service.ISearchService
	DocumentService    service.IDocumentService
	EventPublisher     *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	appLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	documentRepository := implementation.NewDocumentRepository(db)

	chain, err := newEmbeddingChain(cfg)
	if err != nil {
		return nil, err
	}

	extractor := extract.NewExtractor()

	chk, err := chunker.New(cfg.Ingestion.ChunkSize, cfg.Ingestion.ChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("build chunker: %w", err)
	}

	llmProvider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.OllamaBaseURL)
	if err != nil {
		return nil, fmt.Errorf("build llm provider: %w", err)
	}
	anl, err := analyzer.New(llmProvider)
	if err != nil {
		return nil, fmt.Errorf("build analyzer: %w", err)
	}

	vectorStore := vectorstore.NewResilient(vectorstore.NewPgStore(db), chain)

	// The event bus is auxiliary: a worker without NATS still ingests.
	eventPublisher, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] NATS unavailable, lifecycle events disabled: %v", err)
		eventPublisher = nil
	}

	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)

	ingestionService := service.NewIngestionService(extractor, chk, anl, chain)
	publisherService := service.NewPublisherService(pubSub, cfg.Ingestion.TopicName)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ingestion.TopicName,
		documentRepository,
		ingestionService,
		vectorStore,
		eventPublisher,
	)
	searchService := service.NewSearchService(vectorStore, chain)
	documentService := service.NewDocumentService(documentRepository, publisherService, vectorStore)

	return &Container{
		Logger:             appLogger,
		DocumentRepository: documentRepository,
		VectorStore:        vectorStore,
		PublisherService:   publisherService,
		ConsumerService:    consumerService,
		IngestionService:   ingestionService,
		SearchService:      searchService,
		DocumentService:    documentService,
		EventPublisher:     eventPublisher,
	}, nil
}

// newEmbeddingChain builds the credential chain for the configured
// provider. A Jina key, when present alongside Gemini or Ollama, is
// appended as the last link so rate-limited runs keep producing vectors.
func newEmbeddingChain(cfg *config.Config) (*embedding.Chain, error) {
	var providers []embedding.EmbeddingProvider

	switch cfg.Ai.EmbeddingProvider {
	case "gemini":
		if len(cfg.Ai.GeminiAPIKeys) == 0 {
			return nil, fmt.Errorf("EMBEDDING_PROVIDER=gemini requires GOOGLE_GEMINI_API_KEYS")
		}
		for _, key := range cfg.Ai.GeminiAPIKeys {
			providers = append(providers, embedding.NewGeminiProvider(key))
		}
	case "ollama":
		providers = append(providers, embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel))
	case "jina":
		if cfg.Ai.JinaAPIKey == "" {
			return nil, fmt.Errorf("EMBEDDING_PROVIDER=jina requires JINA_API_KEY")
		}
		providers = append(providers, jina.NewJinaProvider(cfg.Ai.JinaAPIKey))
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Ai.EmbeddingProvider)
	}

	if cfg.Ai.EmbeddingProvider != "jina" && cfg.Ai.JinaAPIKey != "" {
		providers = append(providers, jina.NewJinaProvider(cfg.Ai.JinaAPIKey))
	}

	return embedding.NewChain(providers...), nil
}
