package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"ai-learndocs-be/internal/constant"
	"ai-learndocs-be/internal/dto"
	"ai-learndocs-be/internal/entity"
	"ai-learndocs-be/internal/repository/contract"
	"ai-learndocs-be/internal/repository/specification"
	"ai-learndocs-be/pkg/events"
	"ai-learndocs-be/pkg/extract"
	pktNats "ai-learndocs-be/pkg/nats"
	"ai-learndocs-be/pkg/vectorstore"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the ingestion queue: one message per document run.
// It owns persistence policy around the pipeline: the document record is
// moved through its lifecycle and vectors are always deleted before being
// stored, so reprocessing never duplicates chunk records.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	documents      contract.DocumentRepository
	ingestion      IIngestionService
	vectorStore    *vectorstore.Resilient
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	documents contract.DocumentRepository,
	ingestion IIngestionService,
	vectorStore *vectorstore.Resilient,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		documents:      documents,
		ingestion:      ingestion,
		vectorStore:    vectorStore,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ProcessDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing document %s", payload.DocumentId)

	document, err := cs.documents.FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		log.Printf("[ERROR] Failed to load document %s: %v", payload.DocumentId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if document == nil {
		log.Printf("[ERROR] Document not found: %s", payload.DocumentId)
		msg.Ack() // Deleted before processing? Ack.
		return
	}

	document.Status = constant.DocumentStatusProcessing
	document.ProcessingError = ""
	if err := cs.documents.Update(ctx, document); err != nil {
		log.Printf("[ERROR] Failed to mark document %s processing: %v", payload.DocumentId, err)
		msg.Nack()
		return
	}

	result, err := cs.ingestion.Process(ctx, &dto.ProcessDocumentRequest{
		DocumentId: document.Id,
		FilePath:   document.FilePath,
		FileType:   document.FileType,
	})
	if err != nil {
		cs.failDocument(ctx, document, err)
		msg.Ack() // Document-level failures are terminal, not retriable.
		return
	}

	records := make([]vectorstore.Record, len(result.Chunks))
	for i, chunk := range result.Chunks {
		records[i] = vectorstore.Record{
			DocumentId: document.Id,
			ChunkIndex: chunk.Metadata.Index,
			Content:    chunk.Content,
			Embedding:  chunk.Embedding,
		}
	}

	// Delete-then-store: the stored set must be exactly this run's chunks.
	if err := cs.vectorStore.DeleteChunks(ctx, document.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old vectors for %s: %v", document.Id, err)
		msg.Nack()
		return
	}
	if err := cs.vectorStore.StoreChunks(ctx, document.Id, records); err != nil {
		log.Printf("[ERROR] Failed to store vectors for %s: %v", document.Id, err)
		msg.Nack()
		return
	}

	document.ExtractedText = result.Text
	document.Metadata = result.Metadata
	document.Status = constant.DocumentStatusCompleted
	if err := cs.documents.Update(ctx, document); err != nil {
		log.Printf("[ERROR] Failed to complete document %s: %v", document.Id, err)
		msg.Nack()
		return
	}

	cs.publishEvent(ctx, "DOCUMENT_PROCESSED", map[string]interface{}{
		"document_id":      document.Id,
		"chunk_count":      len(result.Chunks),
		"embedding_method": result.Metadata.EmbeddingMethod,
	})

	log.Printf("[SUCCESS] Document %s processed: %d chunks (%s)",
		document.Id, len(result.Chunks), result.Metadata.EmbeddingMethod)
	msg.Ack()
}

func (cs *consumerService) failDocument(ctx context.Context, document *entity.Document, cause error) {
	document.Status = constant.DocumentStatusFailed
	document.ProcessingError = userFacingError(cause)
	if err := cs.documents.Update(ctx, document); err != nil {
		log.Printf("[ERROR] Failed to mark document %s failed: %v", document.Id, err)
	}

	cs.publishEvent(ctx, "DOCUMENT_FAILED", map[string]interface{}{
		"document_id": document.Id,
		"error":       document.ProcessingError,
	})

	log.Printf("[ERROR] Document %s failed: %v", document.Id, cause)
}

// userFacingError keeps stored failure messages readable: the file could
// not be read, or it had no extractable text.
func userFacingError(err error) string {
	switch {
	case errors.Is(err, extract.ErrEmptyContent):
		return "document contains no extractable text"
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return "unsupported document format"
	default:
		return err.Error()
	}
}

func (cs *consumerService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if cs.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	// Notification delivery is auxiliary; log and move on.
	if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish %s event: %v", eventType, err)
	}
}
