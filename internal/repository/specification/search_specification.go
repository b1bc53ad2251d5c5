package specification

import (
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// NearestDocuments projects the cosine distance to Vector and orders by it,
// breaking ties by creation time then id so results are deterministic.
type NearestDocuments struct {
	Vector pgvector.Vector
}

func (s NearestDocuments) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Select("documents.*, documents.embedding <=> ? AS distance", s.Vector).
		Order(gorm.Expr("documents.embedding <=> ?", s.Vector)).
		Order("documents.created_at ASC").
		Order("documents.id ASC")
}
