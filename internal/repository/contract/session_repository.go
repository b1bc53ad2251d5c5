package contract

import (
	"context"

	"chat-memory-be/internal/entity"

	"github.com/google/uuid"
)

// SessionLookup matches one session. UserId is optional.
type SessionLookup struct {
	AppId  string
	UserId *string
	Id     uuid.UUID
}

type SessionQuery struct {
	Tenant     entity.Tenant
	LocationId *string
	ActiveOnly bool
}

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	Update(ctx context.Context, session *entity.Session) error
	// FindOne returns nil, nil when nothing matches.
	FindOne(ctx context.Context, lookup SessionLookup) (*entity.Session, error)
	FindAll(ctx context.Context, query SessionQuery) Sequence[entity.Session]
}
