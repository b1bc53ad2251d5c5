package memory

import (
	"context"
	"sync"

	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// Store keeps every table in process. A transaction holds the write lock from
// Begin to Commit or Rollback, so transactions are serializable.
type Store struct {
	mu sync.RWMutex

	sessions     *table[entity.Session]
	messages     *table[entity.Message]
	metamessages *table[entity.Metamessage]
	collections  *table[entity.Collection]
	documents    *table[entity.Document]
}

func NewStore() *Store {
	return &Store{
		sessions:     newTable(cloneSession),
		messages:     newTable(cloneMessage),
		metamessages: newTable(cloneMetamessage),
		collections:  newTable(cloneCollection),
		documents:    newTable(cloneDocument),
	}
}

type snapshot struct {
	sessions, messages, metamessages, collections, documents map[string]cache.Item
}

func (s *Store) snapshot() *snapshot {
	return &snapshot{
		sessions:     s.sessions.snapshot(),
		messages:     s.messages.snapshot(),
		metamessages: s.metamessages.snapshot(),
		collections:  s.collections.snapshot(),
		documents:    s.documents.snapshot(),
	}
}

func (s *Store) restore(snap *snapshot) {
	s.sessions.restore(snap.sessions)
	s.messages.restore(snap.messages)
	s.metamessages.restore(snap.metamessages)
	s.collections.restore(snap.collections)
	s.documents.restore(snap.documents)
}

type locker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

// nopLocker is used by repositories inside a transaction, which already owns the lock.
type nopLocker struct{}

func (nopLocker) Lock()    {}
func (nopLocker) Unlock()  {}
func (nopLocker) RLock()   {}
func (nopLocker) RUnlock() {}

// view is what every repository embeds: the store plus the locking mode.
type view struct {
	store *Store
	lock  locker
}

func (v view) read(fn func()) {
	v.lock.RLock()
	defer v.lock.RUnlock()
	fn()
}

func (v view) write(fn func() error) error {
	v.lock.Lock()
	defer v.lock.Unlock()
	return fn()
}

func (v view) ownsSession(tenant entity.Tenant, s *entity.Session) bool {
	return s.AppId == tenant.AppId && s.UserId == tenant.UserId
}

func (v view) ownsCollection(tenant entity.Tenant, c *entity.Collection) bool {
	return c.AppId == tenant.AppId && c.UserId == tenant.UserId
}

// sequence evaluates rows lazily under a read lock on every call.
type sequence[E any] struct {
	v    view
	rows func() []*E
}

func newSequence[E any](v view, rows func() []*E) contract.Sequence[E] {
	return &sequence[E]{v: v, rows: rows}
}

func (s *sequence[E]) load(ctx context.Context) ([]*E, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []*E
	s.v.read(func() { rows = s.rows() })
	return rows, nil
}

func (s *sequence[E]) Count(ctx context.Context) (int64, error) {
	rows, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

func (s *sequence[E]) Page(ctx context.Context, offset, limit int) ([]*E, error) {
	rows, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return []*E{}, nil
	}
	end := len(rows)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}
	return rows[offset:end], nil
}

func (s *sequence[E]) All(ctx context.Context) ([]*E, error) {
	rows, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*E{}
	}
	return rows, nil
}
