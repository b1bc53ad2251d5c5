package service

import (
	"context"
	"errors"

	"chat-memory-be/internal/apperror"
	"chat-memory-be/internal/dto"
	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/pkg/logger"
	"chat-memory-be/internal/repository/contract"
	"chat-memory-be/internal/repository/unitofwork"
	"chat-memory-be/pkg/events"

	"github.com/google/uuid"
)

const collectionModule = "COLLECTION"

type ICollectionService interface {
	List(ctx context.Context, tenant entity.Tenant) (contract.Sequence[entity.Collection], error)
	GetById(ctx context.Context, tenant entity.Tenant, collectionId uuid.UUID) (*entity.Collection, error)
	GetByName(ctx context.Context, tenant entity.Tenant, name string) (*entity.Collection, error)
	// Create and Update fail with AlreadyExists when the name is taken within the tenant.
	Create(ctx context.Context, tenant entity.Tenant, req *dto.CreateCollectionRequest) (*entity.Collection, error)
	Update(ctx context.Context, tenant entity.Tenant, collectionId uuid.UUID, req *dto.UpdateCollectionRequest) (*entity.Collection, error)
	// Delete removes the collection and all of its documents in one transaction.
	Delete(ctx context.Context, tenant entity.Tenant, collectionId uuid.UUID) (bool, error)
}

type collectionService struct {
	base
}

func NewCollectionService(
	uowFactory unitofwork.RepositoryFactory,
	publisher events.Publisher,
	logger logger.ILogger,
) ICollectionService {
	return &collectionService{base: newBase(uowFactory, publisher, logger)}
}

func (s *collectionService) List(ctx context.Context, tenant entity.Tenant) (seq contract.Sequence[entity.Collection], err error) {
	const op = "collection.list"
	_, span := startSpan(ctx, "memory.collection.list", tenant)
	defer func() { endSpan(span, err) }()

	if err := checkInput(op, tenant, nil); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return wrapSequence(uow.CollectionRepository().FindAll(ctx, tenant), op, "collection"), nil
}

func (s *collectionService) GetById(ctx context.Context, tenant entity.Tenant, collectionId uuid.UUID) (*entity.Collection, error) {
	return s.find(ctx, "collection.get_by_id", tenant, contract.CollectionLookup{Tenant: tenant, Id: &collectionId})
}

func (s *collectionService) GetByName(ctx context.Context, tenant entity.Tenant, name string) (*entity.Collection, error) {
	return s.find(ctx, "collection.get_by_name", tenant, contract.CollectionLookup{Tenant: tenant, Name: &name})
}

func (s *collectionService) find(ctx context.Context, op string, tenant entity.Tenant, lookup contract.CollectionLookup) (collection *entity.Collection, err error) {
	ctx, span := startSpan(ctx, "memory."+op, tenant)
	defer func() { endSpan(span, err) }()

	if err := checkInput(op, tenant, nil); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	collection, err = uow.CollectionRepository().FindOne(ctx, lookup)
	if err != nil {
		return nil, s.classify(collectionModule, op, "collection", err)
	}
	if collection == nil {
		return nil, apperror.NotFound(op, "collection")
	}
	return collection, nil
}

func (s *collectionService) Create(ctx context.Context, tenant entity.Tenant, req *dto.CreateCollectionRequest) (collection *entity.Collection, err error) {
	const op = "collection.create"
	ctx, span := startSpan(ctx, "memory.collection.create", tenant)
	defer func() { endSpan(span, err) }()

	if req == nil {
		return nil, apperror.InvalidArgument(op, errMissingRequest)
	}
	if err := checkInput(op, tenant, req); err != nil {
		return nil, err
	}

	collection = &entity.Collection{
		Id:        uuid.New(),
		AppId:     tenant.AppId,
		UserId:    tenant.UserId,
		Name:      req.Name,
		Metadata:  map[string]interface{}{},
		CreatedAt: s.now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	err = inTransaction(ctx, uow, func() error {
		return uow.CollectionRepository().Create(ctx, collection)
	})
	if err != nil {
		return nil, s.classify(collectionModule, op, "collection", err)
	}

	s.publish(ctx, collectionModule, events.New(events.CollectionCreated, map[string]interface{}{
		"collection_id": collection.Id.String(),
		"app_id":        tenant.AppId,
		"user_id":       tenant.UserId,
	}))
	return collection, nil
}

func (s *collectionService) Update(ctx context.Context, tenant entity.Tenant, collectionId uuid.UUID, req *dto.UpdateCollectionRequest) (collection *entity.Collection, err error) {
	const op = "collection.update"
	ctx, span := startSpan(ctx, "memory.collection.update", tenant)
	defer func() { endSpan(span, err) }()

	if req == nil {
		return nil, apperror.InvalidArgument(op, errNothingToUpdate)
	}
	if err := checkInput(op, tenant, req); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	err = inTransaction(ctx, uow, func() error {
		repo := uow.CollectionRepository()
		found, err := repo.FindOne(ctx, contract.CollectionLookup{Tenant: tenant, Id: &collectionId})
		if err != nil {
			return err
		}
		if found == nil {
			return apperror.NotFound(op, "collection")
		}

		found.Name = req.Name
		if err := repo.Update(ctx, found); err != nil {
			return err
		}
		collection = found
		return nil
	})
	if err != nil {
		return nil, s.classify(collectionModule, op, "collection", err)
	}
	return collection, nil
}

func (s *collectionService) Delete(ctx context.Context, tenant entity.Tenant, collectionId uuid.UUID) (deleted bool, err error) {
	const op = "collection.delete"
	ctx, span := startSpan(ctx, "memory.collection.delete", tenant)
	defer func() { endSpan(span, err) }()

	if err := checkInput(op, tenant, nil); err != nil {
		return false, err
	}

	var removed int64
	uow := s.uowFactory.NewUnitOfWork(ctx)
	err = inTransaction(ctx, uow, func() error {
		found, err := uow.CollectionRepository().FindOne(ctx, contract.CollectionLookup{Tenant: tenant, Id: &collectionId})
		if err != nil || found == nil {
			return err
		}

		// Documents first: the foreign key restricts deleting a referenced collection.
		removed, err = uow.DocumentRepository().DeleteByCollectionId(ctx, collectionId)
		if err != nil {
			return err
		}
		if err := uow.CollectionRepository().Delete(ctx, collectionId); err != nil {
			if errors.Is(err, contract.ErrForeignKey) {
				// A document was inserted concurrently; the collection stays.
				return apperror.StoreFailure(op, "collection", err)
			}
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, s.classify(collectionModule, op, "collection", err)
	}

	if deleted {
		s.logger.Info(collectionModule, "Collection deleted", map[string]interface{}{
			"collection_id":     collectionId.String(),
			"documents_removed": removed,
		})
		s.publish(ctx, collectionModule, events.New(events.CollectionDeleted, map[string]interface{}{
			"collection_id":     collectionId.String(),
			"app_id":            tenant.AppId,
			"user_id":           tenant.UserId,
			"documents_removed": removed,
		}))
	}
	return deleted, nil
}
