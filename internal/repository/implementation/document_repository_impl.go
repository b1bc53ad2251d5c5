package implementation

import (
	"context"

	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/mapper"
	"chat-memory-be/internal/model"
	"chat-memory-be/internal/repository/contract"
	"chat-memory-be/internal/repository/scope"
	"chat-memory-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentRepositoryImpl struct {
	table  *gormTable[model.Document, entity.Document]
	mapper *mapper.DocumentMapper
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	m := mapper.NewDocumentMapper()
	return &DocumentRepositoryImpl{
		table: &gormTable[model.Document, entity.Document]{
			db:       db,
			toModel:  m.DocumentToModel,
			toEntity: m.DocumentToEntity,
		},
		mapper: m,
	}
}

func (r *DocumentRepositoryImpl) Create(ctx context.Context, document *entity.Document) error {
	return r.table.create(ctx, document)
}

func (r *DocumentRepositoryImpl) Update(ctx context.Context, document *entity.Document) error {
	return r.table.save(ctx, document)
}

func (r *DocumentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.table.delete(ctx, specification.ByID{Table: "documents", ID: id})
	return err
}

func (r *DocumentRepositoryImpl) DeleteByCollectionId(ctx context.Context, collectionId uuid.UUID) (int64, error) {
	return r.table.delete(ctx, specification.Filter("documents.collection_id", collectionId))
}

func (r *DocumentRepositoryImpl) FindOne(ctx context.Context, lookup contract.DocumentLookup) (*entity.Document, error) {
	return r.table.findOne(ctx,
		specification.SelectTable{Table: "documents"},
		specification.DocumentInCollection{Tenant: lookup.Tenant, CollectionId: lookup.CollectionId},
		specification.ByID{Table: "documents", ID: lookup.Id},
	)
}

func (r *DocumentRepositoryImpl) FindAll(ctx context.Context, query contract.DocumentQuery) contract.Sequence[entity.Document] {
	specs := []specification.Specification{
		specification.DocumentInCollection{Tenant: query.Tenant, CollectionId: query.CollectionId},
	}
	return r.table.sequence("documents", specs, scope.OrderByCreatedAscIn("documents"))
}

// SearchSimilar uses pgvector cosine distance: embedding <=> query.
// The join keeps the search inside the tenant's collection.
func (r *DocumentRepositoryImpl) SearchSimilar(ctx context.Context, query contract.DocumentQuery, embedding []float32, limit int) ([]*entity.ScoredDocument, error) {
	if limit <= 0 {
		return []*entity.ScoredDocument{}, nil
	}

	var results []*model.ScoredDocument
	err := applySpecifications(r.table.db.WithContext(ctx).Table("documents"),
		specification.DocumentInCollection{Tenant: query.Tenant, CollectionId: query.CollectionId},
		specification.NearestDocuments{Vector: pgvector.NewVector(embedding)},
		specification.Pagination{Limit: limit},
	).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*entity.ScoredDocument, len(results))
	for i, res := range results {
		scored[i] = r.mapper.ScoredDocumentToEntity(res)
	}
	return scored, nil
}
