package contract

import (
	"context"

	"chat-memory-be/internal/entity"

	"github.com/google/uuid"
)

type DocumentLookup struct {
	Tenant       entity.Tenant
	CollectionId uuid.UUID
	Id           uuid.UUID
}

type DocumentQuery struct {
	Tenant       entity.Tenant
	CollectionId uuid.UUID
}

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	Update(ctx context.Context, document *entity.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByCollectionId removes every document of the collection and reports how many.
	DeleteByCollectionId(ctx context.Context, collectionId uuid.UUID) (int64, error)
	FindOne(ctx context.Context, lookup DocumentLookup) (*entity.Document, error)
	FindAll(ctx context.Context, query DocumentQuery) Sequence[entity.Document]
	// SearchSimilar orders by ascending cosine distance, then creation time, then id.
	// A non-positive limit matches nothing; callers clamp it first.
	SearchSimilar(ctx context.Context, query DocumentQuery, embedding []float32, limit int) ([]*entity.ScoredDocument, error)
}
