package service

import (
	"context"
	"errors"
	"time"

	"chat-memory-be/internal/apperror"
	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/pkg/logger"
	"chat-memory-be/internal/repository/contract"
	"chat-memory-be/internal/repository/unitofwork"
	"chat-memory-be/pkg/events"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var validate = validator.New()

var (
	errNothingToUpdate = errors.New("update has no fields to change")
	errMissingRequest  = errors.New("request is required")
)

var tracer = otel.Tracer("chat-memory-be/internal/service")

// base carries what every service needs.
type base struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  events.Publisher
	logger     logger.ILogger
	now        func() time.Time
}

func newBase(uowFactory unitofwork.RepositoryFactory, publisher events.Publisher, log logger.ILogger) base {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return base{uowFactory: uowFactory, publisher: publisher, logger: log, now: utcNow}
}

// utcNow matches Postgres timestamptz precision so stored and returned values agree.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func startSpan(ctx context.Context, name string, tenant entity.Tenant) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("memory.app_id", tenant.AppId),
		attribute.String("memory.user_id", tenant.UserId),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// checkInput rejects a bad tenant or a request failing its validate tags.
func checkInput(op string, tenant entity.Tenant, req interface{}) error {
	if err := tenant.Validate(); err != nil {
		return apperror.InvalidArgument(op, err)
	}
	if req != nil {
		if err := validate.Struct(req); err != nil {
			return apperror.InvalidArgument(op, err)
		}
	}
	return nil
}

// inTransaction runs fn inside one unit of work. Rollback runs before the
// error reaches the caller, so a failed write leaves the store unmodified.
func inTransaction(ctx context.Context, uow unitofwork.UnitOfWork, fn func() error) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := fn(); err != nil {
		return err
	}
	return uow.Commit()
}

// classify turns a store error into an apperror once. Errors that already
// carry a kind pass through.
func (b *base) classify(module, op, entityName string, err error) error {
	if err == nil {
		return nil
	}
	if apperror.KindOf(err) != nil {
		return err
	}
	switch {
	case errors.Is(err, contract.ErrDuplicateKey):
		return apperror.AlreadyExists(op, entityName, err)
	case errors.Is(err, contract.ErrForeignKey):
		// The parent vanished between validation and insert.
		return apperror.NotFound(op, entityName)
	}
	b.logger.Error(module, "Store operation failed", map[string]interface{}{
		"op":    op,
		"error": err.Error(),
	})
	return apperror.StoreFailure(op, entityName, err)
}

func (b *base) publish(ctx context.Context, module string, event events.Event) {
	if err := b.publisher.Publish(ctx, event); err != nil {
		b.logger.Warn(module, "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}

// storeSequence classifies errors from a lazy store sequence.
type storeSequence[T any] struct {
	inner  contract.Sequence[T]
	op     string
	entity string
}

func wrapSequence[T any](inner contract.Sequence[T], op, entityName string) contract.Sequence[T] {
	return &storeSequence[T]{inner: inner, op: op, entity: entityName}
}

func (s *storeSequence[T]) Count(ctx context.Context) (int64, error) {
	n, err := s.inner.Count(ctx)
	if err != nil {
		return 0, apperror.StoreFailure(s.op, s.entity, err)
	}
	return n, nil
}

func (s *storeSequence[T]) Page(ctx context.Context, offset, limit int) ([]*T, error) {
	rows, err := s.inner.Page(ctx, offset, limit)
	if err != nil {
		return nil, apperror.StoreFailure(s.op, s.entity, err)
	}
	return rows, nil
}

func (s *storeSequence[T]) All(ctx context.Context) ([]*T, error) {
	rows, err := s.inner.All(ctx)
	if err != nil {
		return nil, apperror.StoreFailure(s.op, s.entity, err)
	}
	return rows, nil
}
