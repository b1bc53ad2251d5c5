package memory

import (
	"context"
	"fmt"
	"time"

	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/repository/contract"

	"github.com/google/uuid"
)

type sessionRepository struct {
	view
}

func sessionKey(s *entity.Session) (time.Time, uuid.UUID) { return s.CreatedAt, s.Id }

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	return r.write(func() error {
		if r.store.sessions.has(session.Id) {
			return fmt.Errorf("%w: sessions_pkey", contract.ErrDuplicateKey)
		}
		r.store.sessions.put(session.Id, session)
		return nil
	})
}

func (r *sessionRepository) Update(ctx context.Context, session *entity.Session) error {
	return r.write(func() error {
		r.store.sessions.put(session.Id, session)
		return nil
	})
}

func (r *sessionRepository) FindOne(ctx context.Context, lookup contract.SessionLookup) (*entity.Session, error) {
	var found *entity.Session
	r.read(func() {
		s, ok := r.store.sessions.get(lookup.Id)
		if !ok || s.AppId != lookup.AppId {
			return
		}
		if lookup.UserId != nil && s.UserId != *lookup.UserId {
			return
		}
		found = s
	})
	return found, nil
}

func (r *sessionRepository) FindAll(ctx context.Context, query contract.SessionQuery) contract.Sequence[entity.Session] {
	return newSequence(r.view, func() []*entity.Session {
		rows := r.store.sessions.scan(func(s *entity.Session) bool {
			if !r.ownsSession(query.Tenant, s) {
				return false
			}
			if query.ActiveOnly && !s.IsActive {
				return false
			}
			if query.LocationId != nil && (s.LocationId == nil || *s.LocationId != *query.LocationId) {
				return false
			}
			return true
		})
		sortByCreated(rows, sessionKey)
		return rows
	})
}
