package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// Document rows are created by database.Migrate with an explicit DDL so the
// vector column carries the configured dimensionality.
type Document struct {
	Id           uuid.UUID         `gorm:"type:uuid;primaryKey"`
	CollectionId uuid.UUID         `gorm:"type:uuid;not null"`
	Content      string            `gorm:"type:text;not null"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	Embedding    pgvector.Vector   `gorm:"type:vector;not null"`
	CreatedAt    time.Time         `gorm:"not null"`
}

func (Document) TableName() string {
	return "documents"
}

// ScoredDocument is the scan target of a similarity query.
type ScoredDocument struct {
	Document
	Distance float64
}
