package mapper

import (
	"encoding/json"
	"log"

	"ai-learndocs-be/internal/entity"
	"ai-learndocs-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToModel(e *entity.Document) *model.Document {
	doc := &model.Document{
		Id:              e.Id,
		Filename:        e.Filename,
		FileType:        e.FileType,
		FilePath:        e.FilePath,
		ExtractedText:   e.ExtractedText,
		Status:          e.Status,
		ProcessingError: e.ProcessingError,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
	if e.Metadata != nil {
		raw, err := json.Marshal(e.Metadata)
		if err != nil {
			log.Printf("[ERROR] Failed to marshal metadata for document %s: %v", e.Id, err)
		} else {
			doc.Metadata = raw
		}
	}
	return doc
}

func (m *DocumentMapper) ToEntity(doc *model.Document) *entity.Document {
	e := &entity.Document{
		Id:              doc.Id,
		Filename:        doc.Filename,
		FileType:        doc.FileType,
		FilePath:        doc.FilePath,
		ExtractedText:   doc.ExtractedText,
		Status:          doc.Status,
		ProcessingError: doc.ProcessingError,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
	if len(doc.Metadata) > 0 {
		var meta entity.DocumentMetadata
		if err := json.Unmarshal(doc.Metadata, &meta); err == nil {
			e.Metadata = &meta
		}
	}
	return e
}
