package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"ai-learndocs-be/internal/constant"
	"ai-learndocs-be/internal/dto"
	"ai-learndocs-be/internal/entity"
	"ai-learndocs-be/internal/repository/contract"
	"ai-learndocs-be/internal/repository/specification"
	"ai-learndocs-be/pkg/vectorstore"
)

type RegisterDocumentRequest struct {
	Filename string `validate:"required"`
	FileType string `validate:"required"`
	FilePath string `validate:"required"`
}

type IDocumentService interface {
	Register(ctx context.Context, req *RegisterDocumentRequest) (*entity.Document, error)
	Show(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	Reprocess(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// documentService is the persistence-facing surface the upload layer talks
// to: it records an accepted file and enqueues the pipeline run.
type documentService struct {
	documents   contract.DocumentRepository
	publisher   IPublisherService
	vectorStore *vectorstore.Resilient
	validate    *validator.Validate
}

func NewDocumentService(
	documents contract.DocumentRepository,
	publisher IPublisherService,
	vectorStore *vectorstore.Resilient,
) IDocumentService {
	return &documentService{
		documents:   documents,
		publisher:   publisher,
		vectorStore: vectorStore,
		validate:    validator.New(),
	}
}

func (s *documentService) Register(ctx context.Context, req *RegisterDocumentRequest) (*entity.Document, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	document := &entity.Document{
		Id:        uuid.New(),
		Filename:  req.Filename,
		FileType:  req.FileType,
		FilePath:  req.FilePath,
		Status:    constant.DocumentStatusUploaded,
		CreatedAt: time.Now(),
	}
	if err := s.documents.Create(ctx, document); err != nil {
		return nil, err
	}

	if err := s.enqueue(ctx, document.Id); err != nil {
		return nil, err
	}
	return document, nil
}

func (s *documentService) Show(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	return s.documents.FindOne(ctx, specification.ByID{ID: id})
}

// Reprocess is the explicit reset path for completed or failed documents:
// old vectors are removed and a fresh pipeline run is enqueued.
func (s *documentService) Reprocess(ctx context.Context, id uuid.UUID) error {
	document, err := s.documents.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if document == nil {
		return nil
	}

	if err := s.vectorStore.DeleteChunks(ctx, id); err != nil {
		return err
	}

	document.Status = constant.DocumentStatusUploaded
	document.ProcessingError = ""
	document.Metadata = nil
	if err := s.documents.Update(ctx, document); err != nil {
		return err
	}
	return s.enqueue(ctx, id)
}

func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.vectorStore.DeleteChunks(ctx, id); err != nil {
		return err
	}
	return s.documents.Delete(ctx, id)
}

func (s *documentService) enqueue(ctx context.Context, id uuid.UUID) error {
	payload, err := json.Marshal(dto.ProcessDocumentMessage{DocumentId: id})
	if err != nil {
		return err
	}
	return s.publisher.Publish(ctx, payload)
}
