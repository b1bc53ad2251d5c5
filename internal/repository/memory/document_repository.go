package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/repository/contract"

	"github.com/google/uuid"
)

type documentRepository struct {
	view
}

func documentKey(d *entity.Document) (time.Time, uuid.UUID) { return d.CreatedAt, d.Id }

func (r *documentRepository) Create(ctx context.Context, document *entity.Document) error {
	return r.write(func() error {
		if !r.store.collections.has(document.CollectionId) {
			return fmt.Errorf("%w: documents_collection_id_fkey", contract.ErrForeignKey)
		}
		r.store.documents.put(document.Id, document)
		return nil
	})
}

func (r *documentRepository) Update(ctx context.Context, document *entity.Document) error {
	return r.write(func() error {
		r.store.documents.put(document.Id, document)
		return nil
	})
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.write(func() error {
		r.store.documents.remove(id)
		return nil
	})
}

func (r *documentRepository) DeleteByCollectionId(ctx context.Context, collectionId uuid.UUID) (int64, error) {
	var n int64
	err := r.write(func() error {
		docs := r.store.documents.scan(func(d *entity.Document) bool { return d.CollectionId == collectionId })
		for _, d := range docs {
			r.store.documents.remove(d.Id)
		}
		n = int64(len(docs))
		return nil
	})
	return n, err
}

func (r *documentRepository) ownedCollection(tenant entity.Tenant, collectionId uuid.UUID) bool {
	c, ok := r.store.collections.get(collectionId)
	return ok && r.ownsCollection(tenant, c)
}

func (r *documentRepository) FindOne(ctx context.Context, lookup contract.DocumentLookup) (*entity.Document, error) {
	var found *entity.Document
	r.read(func() {
		d, ok := r.store.documents.get(lookup.Id)
		if ok && d.CollectionId == lookup.CollectionId && r.ownedCollection(lookup.Tenant, lookup.CollectionId) {
			found = d
		}
	})
	return found, nil
}

func (r *documentRepository) inCollection(query contract.DocumentQuery) []*entity.Document {
	if !r.ownedCollection(query.Tenant, query.CollectionId) {
		return nil
	}
	return r.store.documents.scan(func(d *entity.Document) bool {
		return d.CollectionId == query.CollectionId
	})
}

func (r *documentRepository) FindAll(ctx context.Context, query contract.DocumentQuery) contract.Sequence[entity.Document] {
	return newSequence(r.view, func() []*entity.Document {
		rows := r.inCollection(query)
		sortByCreated(rows, documentKey)
		return rows
	})
}

func (r *documentRepository) SearchSimilar(ctx context.Context, query contract.DocumentQuery, embedding []float32, limit int) ([]*entity.ScoredDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []*entity.ScoredDocument{}, nil
	}

	var scored []*entity.ScoredDocument
	r.read(func() {
		for _, d := range r.inCollection(query) {
			scored = append(scored, &entity.ScoredDocument{Document: d, Distance: CosineDistance(d.Embedding, embedding)})
		}
	})

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if !a.Document.CreatedAt.Equal(b.Document.CreatedAt) {
			return a.Document.CreatedAt.Before(b.Document.CreatedAt)
		}
		return strings.Compare(a.Document.Id.String(), b.Document.Id.String()) < 0
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	if scored == nil {
		scored = []*entity.ScoredDocument{}
	}
	return scored, nil
}

// CosineDistance is 1 - cosine similarity, the value pgvector's <=> returns.
// Mismatched lengths and zero vectors count as orthogonal.
func CosineDistance(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 1
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
