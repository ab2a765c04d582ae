package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-learndocs-be/internal/constant"
	"ai-learndocs-be/internal/dto"
	"ai-learndocs-be/internal/entity"
	"ai-learndocs-be/internal/repository/specification"
	"ai-learndocs-be/pkg/vectorstore"
)

// fakeDocumentRepository keeps documents in memory so lifecycle
// transitions can be asserted without a database.
type fakeDocumentRepository struct {
	mu   sync.Mutex
	docs map[uuid.UUID]*entity.Document
}

func newFakeDocumentRepository(docs ...*entity.Document) *fakeDocumentRepository {
	repo := &fakeDocumentRepository{docs: make(map[uuid.UUID]*entity.Document)}
	for _, d := range docs {
		c := *d
		repo.docs[d.Id] = &c
	}
	return repo
}

func (r *fakeDocumentRepository) get(id uuid.UUID) *entity.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.docs[id]; ok {
		c := *d
		return &c
	}
	return nil
}

func (r *fakeDocumentRepository) Create(ctx context.Context, d *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *d
	r.docs[d.Id] = &c
	return nil
}

func (r *fakeDocumentRepository) Update(ctx context.Context, d *entity.Document) error {
	return r.Create(ctx, d)
}

func (r *fakeDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, id)
	return nil
}

func (r *fakeDocumentRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok {
			return r.get(byID.ID), nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Document, 0, len(r.docs))
	for _, d := range r.docs {
		c := *d
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeDocumentRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.docs)), nil
}

func newTestConsumer(t *testing.T, extracted string, docs ...*entity.Document) (*consumerService, *fakeDocumentRepository, *vectorstore.Resilient) {
	t.Helper()

	repo := newFakeDocumentRepository(docs...)

	store := vectorstore.NewResilient(nil, nil)
	require.NoError(t, store.Connect(context.Background()))
	require.True(t, store.FallbackMode())

	ingestion := newTestIngestionService(t, extracted, nil)

	cs := NewConsumerService(nil, constant.DocumentUploadedTopic, repo, ingestion, store, nil).(*consumerService)
	return cs, repo, store
}

func processMessageFor(t *testing.T, cs *consumerService, documentId uuid.UUID) *message.Message {
	t.Helper()
	payload, err := json.Marshal(dto.ProcessDocumentMessage{DocumentId: documentId})
	require.NoError(t, err)

	msg := message.NewMessage(watermill.NewUUID(), payload)
	cs.processMessage(context.Background(), msg)
	return msg
}

func assertAcked(t *testing.T, msg *message.Message) {
	t.Helper()
	select {
	case <-msg.Acked():
	default:
		t.Fatal("expected message to be acked")
	}
}

func TestConsumerCompletesDocument(t *testing.T) {
	text := "Glaciers carve valleys over thousands of years. " +
		"Moraines mark where the ice once stopped."
	doc := &entity.Document{
		Id:       uuid.New(),
		Filename: "glaciers.txt",
		FileType: "txt",
		FilePath: "/uploads/glaciers.txt",
		Status:   constant.DocumentStatusUploaded,
	}

	cs, repo, store := newTestConsumer(t, text, doc)

	// Leftovers from a previous run must not survive this one.
	require.NoError(t, store.StoreChunks(context.Background(), doc.Id, []vectorstore.Record{
		{DocumentId: doc.Id, ChunkIndex: 0, Content: "stale chunk", Embedding: []float32{0.1, 0.2, 0.3}},
	}))

	msg := processMessageFor(t, cs, doc.Id)
	assertAcked(t, msg)

	updated := repo.get(doc.Id)
	require.NotNil(t, updated)
	assert.Equal(t, constant.DocumentStatusCompleted, updated.Status)
	assert.Empty(t, updated.ProcessingError)
	assert.Equal(t, text, updated.ExtractedText)
	require.NotNil(t, updated.Metadata)
	assert.Equal(t, constant.EmbeddingMethodPrimary, updated.Metadata.EmbeddingMethod)

	records, err := store.Search(context.Background(), []float32{0.1, 0.2, 0.3}, &doc.Id, 10)
	require.NoError(t, err)
	require.NotEmpty(t, records)
	for _, rec := range records {
		assert.NotEqual(t, "stale chunk", rec.Content)
	}
}

func TestConsumerMarksBlankDocumentFailed(t *testing.T) {
	doc := &entity.Document{
		Id:       uuid.New(),
		Filename: "blank.txt",
		FileType: "txt",
		FilePath: "/uploads/blank.txt",
		Status:   constant.DocumentStatusUploaded,
	}

	cs, repo, _ := newTestConsumer(t, "   \n ", doc)

	msg := processMessageFor(t, cs, doc.Id)
	assertAcked(t, msg)

	updated := repo.get(doc.Id)
	require.NotNil(t, updated)
	assert.Equal(t, constant.DocumentStatusFailed, updated.Status)
	assert.Equal(t, "document contains no extractable text", updated.ProcessingError)
	assert.Nil(t, updated.Metadata)
}

func TestConsumerAcksUnknownDocument(t *testing.T) {
	cs, repo, _ := newTestConsumer(t, "irrelevant")

	msg := processMessageFor(t, cs, uuid.New())
	assertAcked(t, msg)

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestConsumerAcksMalformedPayload(t *testing.T) {
	cs, _, _ := newTestConsumer(t, "irrelevant")

	msg := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
	cs.processMessage(context.Background(), msg)
	assertAcked(t, msg)
}
