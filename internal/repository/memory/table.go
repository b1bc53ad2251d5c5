package memory

import (
	"maps"
	"slices"
	"sort"
	"strings"
	"time"

	"chat-memory-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// table is one go-cache keyed by id. It stores private copies, so callers can
// never mutate committed state through a returned pointer.
type table[E any] struct {
	c     *cache.Cache
	clone func(*E) *E
}

func newTable[E any](clone func(*E) *E) *table[E] {
	return &table[E]{c: cache.New(cache.NoExpiration, 0), clone: clone}
}

// put stores a copy of e and writes the normalised row back into e, so
// callers see what a later read would return.
func (t *table[E]) put(id uuid.UUID, e *E) {
	stored := t.clone(e)
	t.c.Set(id.String(), stored, cache.NoExpiration)
	*e = *t.clone(stored)
}

func (t *table[E]) get(id uuid.UUID) (*E, bool) {
	x, ok := t.c.Get(id.String())
	if !ok {
		return nil, false
	}
	return t.clone(x.(*E)), true
}

func (t *table[E]) has(id uuid.UUID) bool {
	_, ok := t.c.Get(id.String())
	return ok
}

func (t *table[E]) remove(id uuid.UUID) {
	t.c.Delete(id.String())
}

// scan returns copies of every row that matches.
func (t *table[E]) scan(match func(*E) bool) []*E {
	var out []*E
	for _, item := range t.c.Items() {
		e := item.Object.(*E)
		if match(e) {
			out = append(out, t.clone(e))
		}
	}
	return out
}

func (t *table[E]) snapshot() map[string]cache.Item {
	return t.c.Items()
}

func (t *table[E]) restore(items map[string]cache.Item) {
	t.c.Flush()
	for k, item := range items {
		t.c.Set(k, item.Object, cache.NoExpiration)
	}
}

// sortByCreated orders rows oldest first with the id as tie-break, matching
// the Postgres ordering on uuid bytes.
func sortByCreated[E any](rows []*E, key func(*E) (time.Time, uuid.UUID)) {
	sort.SliceStable(rows, func(i, j int) bool {
		ti, idi := key(rows[i])
		tj, idj := key(rows[j])
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return strings.Compare(idi.String(), idj.String()) < 0
	})
}

func cloneMetadata(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return maps.Clone(m)
}

func cloneSession(s *entity.Session) *entity.Session {
	c := *s
	if s.LocationId != nil {
		loc := *s.LocationId
		c.LocationId = &loc
	}
	c.Metadata = cloneMetadata(s.Metadata)
	return &c
}

func cloneMessage(m *entity.Message) *entity.Message {
	c := *m
	c.Metadata = cloneMetadata(m.Metadata)
	return &c
}

func cloneMetamessage(m *entity.Metamessage) *entity.Metamessage {
	c := *m
	c.Metadata = cloneMetadata(m.Metadata)
	return &c
}

func cloneCollection(col *entity.Collection) *entity.Collection {
	c := *col
	c.Metadata = cloneMetadata(col.Metadata)
	return &c
}

func cloneDocument(d *entity.Document) *entity.Document {
	c := *d
	c.Metadata = cloneMetadata(d.Metadata)
	c.Embedding = slices.Clone(d.Embedding)
	return &c
}
