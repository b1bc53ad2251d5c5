package entity

import (
	"time"

	"github.com/google/uuid"
)

type Collection struct {
	Id        uuid.UUID
	AppId     string
	UserId    string
	Name      string
	Metadata  map[string]interface{}
	CreatedAt time.Time
}

type Document struct {
	Id           uuid.UUID
	CollectionId uuid.UUID
	Content      string
	Metadata     map[string]interface{}
	Embedding    []float32
	CreatedAt    time.Time
}

// ScoredDocument pairs a document with its cosine distance to a query vector.
// Smaller is closer.
type ScoredDocument struct {
	Document *Document
	Distance float64
}
