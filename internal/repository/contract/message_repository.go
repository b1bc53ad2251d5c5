package contract

import (
	"context"

	"chat-memory-be/internal/entity"

	"github.com/google/uuid"
)

type MessageLookup struct {
	Tenant    entity.Tenant
	SessionId uuid.UUID
	Id        uuid.UUID
}

type MessageQuery struct {
	Tenant    entity.Tenant
	SessionId uuid.UUID
}

// MessageRepository is append-only.
type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindOne(ctx context.Context, lookup MessageLookup) (*entity.Message, error)
	FindAll(ctx context.Context, query MessageQuery) Sequence[entity.Message]
}
