package vectorstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// chunkVector is the pgvector-backed row for one chunk embedding.
type chunkVector struct {
	Id         uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID        `gorm:"type:uuid;not null;index"`
	ChunkIndex int              `gorm:"default:0"`
	Content    string           `gorm:"type:text"`
	Embedding  *pgvector.Vector `gorm:"type:vector(768)"` // null for degraded chunks
	CreatedAt  time.Time        `gorm:"autoCreateTime"`
}

func (chunkVector) TableName() string {
	return "chunk_vectors"
}

// PgStore persists chunk vectors in Postgres with the pgvector extension.
type PgStore struct {
	db *gorm.DB
}

func NewPgStore(db *gorm.DB) *PgStore {
	return &PgStore{db: db}
}

// Connect verifies the database is reachable. The resilient wrapper applies
// its probe timeout through ctx.
func (s *PgStore) Connect(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// StoreChunks deletes the document's previous records and inserts the new
// set in one transaction, so a repeated store never duplicates an index.
func (s *PgStore) StoreChunks(ctx context.Context, documentId uuid.UUID, records []Record) error {
	rows := make([]*chunkVector, len(records))
	for i, rec := range records {
		row := &chunkVector{
			Id:         uuid.New(),
			DocumentId: documentId,
			ChunkIndex: rec.ChunkIndex,
			Content:    rec.Content,
			CreatedAt:  time.Now(),
		}
		if rec.Embedding != nil {
			v := pgvector.NewVector(rec.Embedding)
			row.Embedding = &v
		}
		rows[i] = row
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", documentId).Delete(&chunkVector{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(rows).Error
	})
}

func (s *PgStore) Search(ctx context.Context, query []float32, documentId *uuid.UUID, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is 1 - cosine_similarity.
	type result struct {
		chunkVector
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(query)
	q := s.db.WithContext(ctx).
		Table("chunk_vectors").
		Select("chunk_vectors.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("embedding IS NOT NULL")
	if documentId != nil {
		q = q.Where("document_id = ?", *documentId)
	}

	err := q.Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	records := make([]Record, len(results))
	for i, res := range results {
		rec := Record{
			DocumentId: res.DocumentId,
			ChunkIndex: res.ChunkIndex,
			Content:    res.Content,
			Similarity: res.Similarity,
		}
		if res.Embedding != nil {
			rec.Embedding = res.Embedding.Slice()
		}
		records[i] = rec
	}
	return records, nil
}

func (s *PgStore) DeleteChunks(ctx context.Context, documentId uuid.UUID) error {
	return s.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&chunkVector{}).Error
}
