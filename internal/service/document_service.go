package service

import (
	"context"
	"errors"
	"time"

	"chat-memory-be/internal/apperror"
	"chat-memory-be/internal/dto"
	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/pkg/logger"
	"chat-memory-be/internal/repository/contract"
	"chat-memory-be/internal/repository/unitofwork"
	"chat-memory-be/pkg/embedding"
	"chat-memory-be/pkg/events"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const documentModule = "DOCUMENT"

var errEmptyContent = errors.New("content must not be empty")

const (
	DefaultTopK = 5
	MaxTopK     = 50
)

type IDocumentService interface {
	Create(ctx context.Context, tenant entity.Tenant, collectionId uuid.UUID, req *dto.CreateDocumentRequest) (*entity.Document, error)
	Get(ctx context.Context, tenant entity.Tenant, collectionId, documentId uuid.UUID) (*entity.Document, error)
	List(ctx context.Context, tenant entity.Tenant, collectionId uuid.UUID) (contract.Sequence[entity.Document], error)
	// Update re-embeds and refreshes CreatedAt when content is present.
	Update(ctx context.Context, tenant entity.Tenant, collectionId, documentId uuid.UUID, req *dto.UpdateDocumentRequest) (*entity.Document, error)
	Delete(ctx context.Context, tenant entity.Tenant, collectionId, documentId uuid.UUID) (bool, error)
	// Query returns the nearest documents by cosine distance, nearest first.
	Query(ctx context.Context, tenant entity.Tenant, collectionId uuid.UUID, req *dto.QueryDocumentsRequest) ([]*entity.ScoredDocument, error)
}

type DocumentOptions struct {
	// Dimensions every embedding must have. Zero skips the length check.
	Dimensions  int
	DefaultTopK int
	MaxTopK     int
}

type documentService struct {
	base
	provider embedding.Provider
	opts     DocumentOptions
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	provider embedding.Provider,
	publisher events.Publisher,
	logger logger.ILogger,
	opts DocumentOptions,
) IDocumentService {
	if opts.MaxTopK <= 0 {
		opts.MaxTopK = MaxTopK
	}
	if opts.DefaultTopK <= 0 {
		opts.DefaultTopK = DefaultTopK
	}
	return &documentService{
		base:     newBase(uowFactory, publisher, logger),
		provider: provider,
		opts:     opts,
	}
}

// ClampTopK applies the default for zero and bounds the result to [1, max].
func ClampTopK(topK, defaultTopK, maxTopK int) int {
	if topK <= 0 {
		topK = defaultTopK
	}
	if topK > maxTopK {
		topK = maxTopK
	}
	if topK < 1 {
		topK = 1
	}
	return topK
}

func (s *documentService) embed(ctx context.Context, op string, text string) ([]float32, error) {
	vec, err := s.provider.Embed(ctx, text)
	if err == nil {
		err = embedding.Validate(vec, s.opts.Dimensions)
	}
	if err != nil {
		s.logger.Error(documentModule, "Embedding failed", map[string]interface{}{
			"op":    op,
			"error": err.Error(),
		})
		return nil, apperror.DependencyFailure(op, err)
	}
	return vec, nil
}

func (s *documentService) findCollection(ctx context.Context, repo contract.CollectionRepository, tenant entity.Tenant, collectionId uuid.UUID) (*entity.Collection, error) {
	return repo.FindOne(ctx, contract.CollectionLookup{Tenant: tenant, Id: &collectionId})
}

func (s *documentService) Create(ctx context.Context, tenant entity.Tenant, collectionId uuid.UUID, req *dto.CreateDocumentRequest) (document *entity.Document, err error) {
	const op = "document.create"
	ctx, span := startSpan(ctx, "memory.document.create", tenant)
	defer func() { endSpan(span, err) }()

	if req == nil {
		return nil, apperror.InvalidArgument(op, errMissingRequest)
	}
	if err := checkInput(op, tenant, req); err != nil {
		return nil, err
	}

	// Check the collection before paying for an embedding. The transaction
	// below checks again, so a concurrent delete still wins.
	collection, err := s.findCollection(ctx, s.uowFactory.NewUnitOfWork(ctx).CollectionRepository(), tenant, collectionId)
	if err != nil {
		return nil, s.classify(documentModule, op, "collection", err)
	}
	if collection == nil {
		return nil, apperror.NotFound(op, "collection")
	}

	vec, err := s.embed(ctx, op, req.Content)
	if err != nil {
		return nil, err
	}

	document = &entity.Document{
		Id:           uuid.New(),
		CollectionId: collectionId,
		Content:      req.Content,
		Metadata:     req.Metadata,
		Embedding:    vec,
		CreatedAt:    s.now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	err = inTransaction(ctx, uow, func() error {
		collection, err := s.findCollection(ctx, uow.CollectionRepository(), tenant, collectionId)
		if err != nil {
			return err
		}
		if collection == nil {
			return apperror.NotFound(op, "collection")
		}
		return uow.DocumentRepository().Create(ctx, document)
	})
	if err != nil {
		return nil, s.classify(documentModule, op, "collection", err)
	}

	s.publishUpsert(ctx, tenant, document)
	return document, nil
}

func (s *documentService) Get(ctx context.Context, tenant entity.Tenant, collectionId, documentId uuid.UUID) (document *entity.Document, err error) {
	const op = "document.get"
	ctx, span := startSpan(ctx, "memory.document.get", tenant)
	defer func() { endSpan(span, err) }()

	if err := checkInput(op, tenant, nil); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err = uow.DocumentRepository().FindOne(ctx, contract.DocumentLookup{
		Tenant:       tenant,
		CollectionId: collectionId,
		Id:           documentId,
	})
	if err != nil {
		return nil, s.classify(documentModule, op, "document", err)
	}
	if document == nil {
		return nil, apperror.NotFound(op, "document")
	}
	return document, nil
}

func (s *documentService) List(ctx context.Context, tenant entity.Tenant, collectionId uuid.UUID) (seq contract.Sequence[entity.Document], err error) {
	const op = "document.list"
	_, span := startSpan(ctx, "memory.document.list", tenant)
	defer func() { endSpan(span, err) }()

	if err := checkInput(op, tenant, nil); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	inner := uow.DocumentRepository().FindAll(ctx, contract.DocumentQuery{
		Tenant:       tenant,
		CollectionId: collectionId,
	})
	return wrapSequence(inner, op, "document"), nil
}

func (s *documentService) Update(ctx context.Context, tenant entity.Tenant, collectionId, documentId uuid.UUID, req *dto.UpdateDocumentRequest) (document *entity.Document, err error) {
	const op = "document.update"
	ctx, span := startSpan(ctx, "memory.document.update", tenant)
	defer func() { endSpan(span, err) }()

	if err := checkInput(op, tenant, nil); err != nil {
		return nil, err
	}
	if req == nil || (!req.Content.Present && !req.Metadata.Present) {
		return nil, apperror.InvalidArgument(op, errNothingToUpdate)
	}
	if req.Content.Present && req.Content.Value == "" {
		return nil, apperror.InvalidArgument(op, errEmptyContent)
	}

	lookup := contract.DocumentLookup{Tenant: tenant, CollectionId: collectionId, Id: documentId}

	var vec []float32
	if req.Content.Present {
		existing, err := s.uowFactory.NewUnitOfWork(ctx).DocumentRepository().FindOne(ctx, lookup)
		if err != nil {
			return nil, s.classify(documentModule, op, "document", err)
		}
		if existing == nil {
			return nil, apperror.NotFound(op, "document")
		}
		if vec, err = s.embed(ctx, op, req.Content.Value); err != nil {
			return nil, err
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	err = inTransaction(ctx, uow, func() error {
		repo := uow.DocumentRepository()
		found, err := repo.FindOne(ctx, lookup)
		if err != nil {
			return err
		}
		if found == nil {
			return apperror.NotFound(op, "document")
		}

		if req.Content.Present {
			found.Content = req.Content.Value
			found.Embedding = vec
			// Re-surfaces the document as new; the timestamp must move forward.
			ts := s.now()
			if !ts.After(found.CreatedAt) {
				ts = found.CreatedAt.Add(time.Microsecond)
			}
			found.CreatedAt = ts
		}
		if req.Metadata.Present {
			found.Metadata = req.Metadata.Value
			if found.Metadata == nil {
				found.Metadata = map[string]interface{}{}
			}
		}

		if err := repo.Update(ctx, found); err != nil {
			return err
		}
		document = found
		return nil
	})
	if err != nil {
		return nil, s.classify(documentModule, op, "document", err)
	}

	s.publishUpsert(ctx, tenant, document)
	return document, nil
}

func (s *documentService) Delete(ctx context.Context, tenant entity.Tenant, collectionId, documentId uuid.UUID) (deleted bool, err error) {
	const op = "document.delete"
	ctx, span := startSpan(ctx, "memory.document.delete", tenant)
	defer func() { endSpan(span, err) }()

	if err := checkInput(op, tenant, nil); err != nil {
		return false, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	err = inTransaction(ctx, uow, func() error {
		repo := uow.DocumentRepository()
		found, err := repo.FindOne(ctx, contract.DocumentLookup{Tenant: tenant, CollectionId: collectionId, Id: documentId})
		if err != nil || found == nil {
			return err
		}
		if err := repo.Delete(ctx, documentId); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, s.classify(documentModule, op, "document", err)
	}

	if deleted {
		s.publish(ctx, documentModule, events.New(events.DocumentDeleted, map[string]interface{}{
			"document_id":   documentId.String(),
			"collection_id": collectionId.String(),
			"app_id":        tenant.AppId,
			"user_id":       tenant.UserId,
		}))
	}
	return deleted, nil
}

func (s *documentService) Query(ctx context.Context, tenant entity.Tenant, collectionId uuid.UUID, req *dto.QueryDocumentsRequest) (results []*entity.ScoredDocument, err error) {
	const op = "document.query"
	ctx, span := startSpan(ctx, "memory.document.query", tenant)
	defer func() { endSpan(span, err) }()

	if req == nil {
		return nil, apperror.InvalidArgument(op, errMissingRequest)
	}
	if err := checkInput(op, tenant, req); err != nil {
		return nil, err
	}
	topK := ClampTopK(req.TopK, s.opts.DefaultTopK, s.opts.MaxTopK)
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("memory.top_k", topK))

	uow := s.uowFactory.NewUnitOfWork(ctx)
	collection, err := s.findCollection(ctx, uow.CollectionRepository(), tenant, collectionId)
	if err != nil {
		return nil, s.classify(documentModule, op, "collection", err)
	}
	if collection == nil {
		return nil, apperror.NotFound(op, "collection")
	}

	vec, err := s.embed(ctx, op, req.Query)
	if err != nil {
		return nil, err
	}

	results, err = uow.DocumentRepository().SearchSimilar(ctx, contract.DocumentQuery{
		Tenant:       tenant,
		CollectionId: collectionId,
	}, vec, topK)
	if err != nil {
		return nil, s.classify(documentModule, op, "document", err)
	}
	return results, nil
}

func (s *documentService) publishUpsert(ctx context.Context, tenant entity.Tenant, document *entity.Document) {
	s.publish(ctx, documentModule, events.New(events.DocumentUpserted, map[string]interface{}{
		"document_id":   document.Id.String(),
		"collection_id": document.CollectionId.String(),
		"app_id":        tenant.AppId,
		"user_id":       tenant.UserId,
	}))
}
