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
	"gorm.io/gorm"
)

type CollectionRepositoryImpl struct {
	table *gormTable[model.Collection, entity.Collection]
}

func NewCollectionRepository(db *gorm.DB) contract.CollectionRepository {
	m := mapper.NewCollectionMapper()
	return &CollectionRepositoryImpl{
		table: &gormTable[model.Collection, entity.Collection]{
			db:       db,
			toModel:  m.CollectionToModel,
			toEntity: m.CollectionToEntity,
		},
	}
}

func (r *CollectionRepositoryImpl) Create(ctx context.Context, collection *entity.Collection) error {
	return r.table.create(ctx, collection)
}

func (r *CollectionRepositoryImpl) Update(ctx context.Context, collection *entity.Collection) error {
	return r.table.save(ctx, collection)
}

func (r *CollectionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.table.delete(ctx, specification.ByID{Table: "collections", ID: id})
	return err
}

func (r *CollectionRepositoryImpl) FindOne(ctx context.Context, lookup contract.CollectionLookup) (*entity.Collection, error) {
	specs := []specification.Specification{
		specification.OwnedByTenant{Table: "collections", Tenant: lookup.Tenant},
	}
	if lookup.Id != nil {
		specs = append(specs, specification.ByID{Table: "collections", ID: *lookup.Id})
	}
	if lookup.Name != nil {
		specs = append(specs, specification.ByCollectionName{Name: *lookup.Name})
	}
	return r.table.findOne(ctx, specs...)
}

func (r *CollectionRepositoryImpl) FindAll(ctx context.Context, tenant entity.Tenant) contract.Sequence[entity.Collection] {
	specs := []specification.Specification{
		specification.OwnedByTenant{Table: "collections", Tenant: tenant},
	}
	return r.table.sequence("collections", specs, scope.OrderByCreatedAscIn("collections"))
}
