package memory

import (
	"context"
	"fmt"
	"time"

	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/repository/contract"

	"github.com/google/uuid"
)

type messageRepository struct {
	view
}

func messageKey(m *entity.Message) (time.Time, uuid.UUID) { return m.CreatedAt, m.Id }

func (r *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	return r.write(func() error {
		if !r.store.sessions.has(message.SessionId) {
			return fmt.Errorf("%w: messages_session_id_fkey", contract.ErrForeignKey)
		}
		r.store.messages.put(message.Id, message)
		return nil
	})
}

// inSession reports whether msg belongs to a tenant-owned session.
func (r *messageRepository) inSession(tenant entity.Tenant, sessionId uuid.UUID, msg *entity.Message) bool {
	if msg.SessionId != sessionId {
		return false
	}
	s, ok := r.store.sessions.get(sessionId)
	return ok && r.ownsSession(tenant, s)
}

func (r *messageRepository) FindOne(ctx context.Context, lookup contract.MessageLookup) (*entity.Message, error) {
	var found *entity.Message
	r.read(func() {
		m, ok := r.store.messages.get(lookup.Id)
		if ok && r.inSession(lookup.Tenant, lookup.SessionId, m) {
			found = m
		}
	})
	return found, nil
}

func (r *messageRepository) FindAll(ctx context.Context, query contract.MessageQuery) contract.Sequence[entity.Message] {
	return newSequence(r.view, func() []*entity.Message {
		s, ok := r.store.sessions.get(query.SessionId)
		if !ok || !r.ownsSession(query.Tenant, s) {
			return nil
		}
		rows := r.store.messages.scan(func(m *entity.Message) bool {
			return m.SessionId == query.SessionId
		})
		sortByCreated(rows, messageKey)
		return rows
	})
}
