package memory

import (
	"context"
	"fmt"
	"time"

	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/repository/contract"

	"github.com/google/uuid"
)

type metamessageRepository struct {
	view
}

func metamessageKey(m *entity.Metamessage) (time.Time, uuid.UUID) { return m.CreatedAt, m.Id }

func (r *metamessageRepository) Create(ctx context.Context, metamessage *entity.Metamessage) error {
	return r.write(func() error {
		if !r.store.messages.has(metamessage.MessageId) {
			return fmt.Errorf("%w: metamessages_message_id_fkey", contract.ErrForeignKey)
		}
		r.store.metamessages.put(metamessage.Id, metamessage)
		return nil
	})
}

// sessionMessages returns the ids of messages in a tenant-owned session.
func (r *metamessageRepository) sessionMessages(tenant entity.Tenant, sessionId uuid.UUID) map[uuid.UUID]bool {
	s, ok := r.store.sessions.get(sessionId)
	if !ok || !r.ownsSession(tenant, s) {
		return nil
	}
	ids := make(map[uuid.UUID]bool)
	for _, m := range r.store.messages.scan(func(m *entity.Message) bool { return m.SessionId == sessionId }) {
		ids[m.Id] = true
	}
	return ids
}

func (r *metamessageRepository) FindOne(ctx context.Context, lookup contract.MetamessageLookup) (*entity.Metamessage, error) {
	var found *entity.Metamessage
	r.read(func() {
		mm, ok := r.store.metamessages.get(lookup.Id)
		if !ok || mm.MessageId != lookup.MessageId {
			return
		}
		if r.sessionMessages(lookup.Tenant, lookup.SessionId)[mm.MessageId] {
			found = mm
		}
	})
	return found, nil
}

func (r *metamessageRepository) FindAll(ctx context.Context, query contract.MetamessageQuery) contract.Sequence[entity.Metamessage] {
	return newSequence(r.view, func() []*entity.Metamessage {
		messages := r.sessionMessages(query.Tenant, query.SessionId)
		rows := r.store.metamessages.scan(func(mm *entity.Metamessage) bool {
			if !messages[mm.MessageId] {
				return false
			}
			if query.MessageId != nil && mm.MessageId != *query.MessageId {
				return false
			}
			if query.MetamessageType != nil && mm.MetamessageType != *query.MetamessageType {
				return false
			}
			return true
		})
		sortByCreated(rows, metamessageKey)
		return rows
	})
}
