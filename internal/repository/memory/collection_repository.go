package memory

import (
	"context"
	"fmt"
	"time"

	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/repository/contract"

	"github.com/google/uuid"
)

type collectionRepository struct {
	view
}

func collectionKey(c *entity.Collection) (time.Time, uuid.UUID) { return c.CreatedAt, c.Id }

// nameTaken enforces the (app_id, user_id, name) unique index.
func (r *collectionRepository) nameTaken(c *entity.Collection) bool {
	clash := r.store.collections.scan(func(other *entity.Collection) bool {
		return other.Id != c.Id && other.AppId == c.AppId && other.UserId == c.UserId && other.Name == c.Name
	})
	return len(clash) > 0
}

func (r *collectionRepository) Create(ctx context.Context, collection *entity.Collection) error {
	return r.write(func() error {
		if r.store.collections.has(collection.Id) || r.nameTaken(collection) {
			return fmt.Errorf("%w: uq_collections_tenant_name", contract.ErrDuplicateKey)
		}
		r.store.collections.put(collection.Id, collection)
		return nil
	})
}

func (r *collectionRepository) Update(ctx context.Context, collection *entity.Collection) error {
	return r.write(func() error {
		if r.nameTaken(collection) {
			return fmt.Errorf("%w: uq_collections_tenant_name", contract.ErrDuplicateKey)
		}
		r.store.collections.put(collection.Id, collection)
		return nil
	})
}

func (r *collectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.write(func() error {
		docs := r.store.documents.scan(func(d *entity.Document) bool { return d.CollectionId == id })
		if len(docs) > 0 {
			return fmt.Errorf("%w: documents_collection_id_fkey", contract.ErrForeignKey)
		}
		r.store.collections.remove(id)
		return nil
	})
}

func (r *collectionRepository) FindOne(ctx context.Context, lookup contract.CollectionLookup) (*entity.Collection, error) {
	var found *entity.Collection
	r.read(func() {
		rows := r.store.collections.scan(func(c *entity.Collection) bool {
			if !r.ownsCollection(lookup.Tenant, c) {
				return false
			}
			if lookup.Id != nil && c.Id != *lookup.Id {
				return false
			}
			if lookup.Name != nil && c.Name != *lookup.Name {
				return false
			}
			return true
		})
		if len(rows) > 0 {
			sortByCreated(rows, collectionKey)
			found = rows[0]
		}
	})
	return found, nil
}

func (r *collectionRepository) FindAll(ctx context.Context, tenant entity.Tenant) contract.Sequence[entity.Collection] {
	return newSequence(r.view, func() []*entity.Collection {
		rows := r.store.collections.scan(func(c *entity.Collection) bool {
			return r.ownsCollection(tenant, c)
		})
		sortByCreated(rows, collectionKey)
		return rows
	})
}
