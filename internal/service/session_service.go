package service

import (
	"context"

	"chat-memory-be/internal/apperror"
	"chat-memory-be/internal/dto"
	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/pkg/logger"
	"chat-memory-be/internal/repository/contract"
	"chat-memory-be/internal/repository/unitofwork"
	"chat-memory-be/pkg/events"

	"github.com/google/uuid"
)

const sessionModule = "SESSION"

type ISessionService interface {
	// Get matches app_id, and user_id only when given. Inactive sessions are returned.
	Get(ctx context.Context, appId string, userId *string, sessionId uuid.UUID) (*entity.Session, error)
	// List returns the tenant's active sessions, oldest first.
	List(ctx context.Context, tenant entity.Tenant, locationId *string) (contract.Sequence[entity.Session], error)
	Create(ctx context.Context, tenant entity.Tenant, req *dto.CreateSessionRequest) (*entity.Session, error)
	// Update replaces the metadata map entirely.
	Update(ctx context.Context, tenant entity.Tenant, sessionId uuid.UUID, req *dto.UpdateSessionRequest) (*entity.Session, error)
	// Delete deactivates the session and reports whether it was found. Messages are kept.
	Delete(ctx context.Context, tenant entity.Tenant, sessionId uuid.UUID) (bool, error)
}

type sessionService struct {
	base
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	publisher events.Publisher,
	logger logger.ILogger,
) ISessionService {
	return &sessionService{base: newBase(uowFactory, publisher, logger)}
}

func (s *sessionService) Get(ctx context.Context, appId string, userId *string, sessionId uuid.UUID) (session *entity.Session, err error) {
	const op = "session.get"
	tenant := entity.Tenant{AppId: appId}
	if userId != nil {
		tenant.UserId = *userId
	}
	ctx, span := startSpan(ctx, "memory.session.get", tenant)
	defer func() { endSpan(span, err) }()

	if appId == "" || (userId != nil && *userId == "") {
		return nil, apperror.InvalidArgument(op, entity.ErrInvalidTenant)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err = uow.SessionRepository().FindOne(ctx, contract.SessionLookup{
		AppId:  appId,
		UserId: userId,
		Id:     sessionId,
	})
	if err != nil {
		return nil, s.classify(sessionModule, op, "session", err)
	}
	if session == nil {
		return nil, apperror.NotFound(op, "session")
	}
	return session, nil
}

func (s *sessionService) List(ctx context.Context, tenant entity.Tenant, locationId *string) (seq contract.Sequence[entity.Session], err error) {
	const op = "session.list"
	_, span := startSpan(ctx, "memory.session.list", tenant)
	defer func() { endSpan(span, err) }()

	if err := checkInput(op, tenant, nil); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	inner := uow.SessionRepository().FindAll(ctx, contract.SessionQuery{
		Tenant:     tenant,
		LocationId: locationId,
		ActiveOnly: true,
	})
	return wrapSequence(inner, op, "session"), nil
}

func (s *sessionService) Create(ctx context.Context, tenant entity.Tenant, req *dto.CreateSessionRequest) (session *entity.Session, err error) {
	const op = "session.create"
	ctx, span := startSpan(ctx, "memory.session.create", tenant)
	defer func() { endSpan(span, err) }()

	if req == nil {
		req = &dto.CreateSessionRequest{}
	}
	if err := checkInput(op, tenant, req); err != nil {
		return nil, err
	}

	session = &entity.Session{
		Id:         uuid.New(),
		AppId:      tenant.AppId,
		UserId:     tenant.UserId,
		LocationId: req.LocationId,
		IsActive:   true,
		Metadata:   req.Metadata,
		CreatedAt:  s.now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	err = inTransaction(ctx, uow, func() error {
		return uow.SessionRepository().Create(ctx, session)
	})
	if err != nil {
		return nil, s.classify(sessionModule, op, "session", err)
	}

	s.publish(ctx, sessionModule, events.New(events.SessionCreated, map[string]interface{}{
		"session_id": session.Id.String(),
		"app_id":     session.AppId,
		"user_id":    session.UserId,
	}))
	return session, nil
}

func (s *sessionService) Update(ctx context.Context, tenant entity.Tenant, sessionId uuid.UUID, req *dto.UpdateSessionRequest) (session *entity.Session, err error) {
	const op = "session.update"
	ctx, span := startSpan(ctx, "memory.session.update", tenant)
	defer func() { endSpan(span, err) }()

	if err := checkInput(op, tenant, nil); err != nil {
		return nil, err
	}
	if req == nil || !req.Metadata.Present {
		return nil, apperror.InvalidArgument(op, errNothingToUpdate)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	err = inTransaction(ctx, uow, func() error {
		repo := uow.SessionRepository()
		found, err := repo.FindOne(ctx, contract.SessionLookup{
			AppId:  tenant.AppId,
			UserId: &tenant.UserId,
			Id:     sessionId,
		})
		if err != nil {
			return err
		}
		if found == nil {
			return apperror.NotFound(op, "session")
		}

		found.Metadata = req.Metadata.Value
		if found.Metadata == nil {
			found.Metadata = map[string]interface{}{}
		}
		if err := repo.Update(ctx, found); err != nil {
			return err
		}
		session = found
		return nil
	})
	if err != nil {
		return nil, s.classify(sessionModule, op, "session", err)
	}
	return session, nil
}

func (s *sessionService) Delete(ctx context.Context, tenant entity.Tenant, sessionId uuid.UUID) (deleted bool, err error) {
	const op = "session.delete"
	ctx, span := startSpan(ctx, "memory.session.delete", tenant)
	defer func() { endSpan(span, err) }()

	if err := checkInput(op, tenant, nil); err != nil {
		return false, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	err = inTransaction(ctx, uow, func() error {
		repo := uow.SessionRepository()
		found, err := repo.FindOne(ctx, contract.SessionLookup{
			AppId:  tenant.AppId,
			UserId: &tenant.UserId,
			Id:     sessionId,
		})
		if err != nil || found == nil {
			return err
		}

		// No is_active filter: deleting an inactive session still reports true.
		found.IsActive = false
		if err := repo.Update(ctx, found); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, s.classify(sessionModule, op, "session", err)
	}

	if deleted {
		s.logger.Info(sessionModule, "Session deactivated", map[string]interface{}{"session_id": sessionId.String()})
		s.publish(ctx, sessionModule, events.New(events.SessionDeactivated, map[string]interface{}{
			"session_id": sessionId.String(),
			"app_id":     tenant.AppId,
			"user_id":    tenant.UserId,
		}))
	}
	return deleted, nil
}
