package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Document struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Filename        string    `gorm:"type:varchar(255);not null"`
	FileType        string    `gorm:"type:varchar(32);not null"`
	FilePath        string    `gorm:"type:text;not null"`
	ExtractedText   string    `gorm:"type:text"`
	Status          string    `gorm:"type:varchar(16);not null;default:'uploaded';index"`
	ProcessingError string    `gorm:"type:text"`
	Metadata        datatypes.JSON
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       *time.Time     `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
