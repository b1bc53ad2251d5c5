package contract

import (
	"context"

	"chat-memory-be/internal/entity"

	"github.com/google/uuid"
)

// CollectionLookup matches by id or by name within the tenant. Exactly one of
// Id and Name should be set.
type CollectionLookup struct {
	Tenant entity.Tenant
	Id     *uuid.UUID
	Name   *string
}

type CollectionRepository interface {
	// Create and Update return ErrDuplicateKey on a name collision within the tenant.
	Create(ctx context.Context, collection *entity.Collection) error
	Update(ctx context.Context, collection *entity.Collection) error
	// Delete returns ErrForeignKey while documents still reference the collection.
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, lookup CollectionLookup) (*entity.Collection, error)
	FindAll(ctx context.Context, tenant entity.Tenant) Sequence[entity.Collection]
}
