package contract

import (
	"context"

	"chat-memory-be/internal/entity"

	"github.com/google/uuid"
)

type MetamessageLookup struct {
	Tenant    entity.Tenant
	SessionId uuid.UUID
	MessageId uuid.UUID
	Id        uuid.UUID
}

// MetamessageQuery filters are optional and independent.
type MetamessageQuery struct {
	Tenant          entity.Tenant
	SessionId       uuid.UUID
	MessageId       *uuid.UUID
	MetamessageType *string
}

// MetamessageRepository is append-only.
type MetamessageRepository interface {
	Create(ctx context.Context, metamessage *entity.Metamessage) error
	FindOne(ctx context.Context, lookup MetamessageLookup) (*entity.Metamessage, error)
	FindAll(ctx context.Context, query MetamessageQuery) Sequence[entity.Metamessage]
}
