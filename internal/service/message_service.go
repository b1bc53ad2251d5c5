package service

import (
	"context"

	"chat-memory-be/internal/apperror"
	"chat-memory-be/internal/dto"
	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/pkg/logger"
	"chat-memory-be/internal/repository/contract"
	"chat-memory-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const messageModule = "MESSAGE"

// IMessageService is append-only: messages have no update or delete.
type IMessageService interface {
	Create(ctx context.Context, tenant entity.Tenant, sessionId uuid.UUID, req *dto.CreateMessageRequest) (*entity.Message, error)
	Get(ctx context.Context, tenant entity.Tenant, sessionId, messageId uuid.UUID) (*entity.Message, error)
	List(ctx context.Context, tenant entity.Tenant, sessionId uuid.UUID) (contract.Sequence[entity.Message], error)
}

type messageService struct {
	base
}

func NewMessageService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) IMessageService {
	return &messageService{base: newBase(uowFactory, nil, logger)}
}

func (s *messageService) Create(ctx context.Context, tenant entity.Tenant, sessionId uuid.UUID, req *dto.CreateMessageRequest) (message *entity.Message, err error) {
	const op = "message.create"
	ctx, span := startSpan(ctx, "memory.message.create", tenant)
	defer func() { endSpan(span, err) }()

	if req == nil {
		return nil, apperror.InvalidArgument(op, errMissingRequest)
	}
	if err := checkInput(op, tenant, req); err != nil {
		return nil, err
	}

	message = &entity.Message{
		Id:        uuid.New(),
		SessionId: sessionId,
		IsUser:    req.IsUser,
		Content:   req.Content,
		Metadata:  req.Metadata,
		CreatedAt: s.now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	err = inTransaction(ctx, uow, func() error {
		// Active or not, the session must belong to the tenant.
		session, err := uow.SessionRepository().FindOne(ctx, contract.SessionLookup{
			AppId:  tenant.AppId,
			UserId: &tenant.UserId,
			Id:     sessionId,
		})
		if err != nil {
			return err
		}
		if session == nil {
			return apperror.NotFound(op, "session")
		}
		return uow.MessageRepository().Create(ctx, message)
	})
	if err != nil {
		return nil, s.classify(messageModule, op, "session", err)
	}
	return message, nil
}

func (s *messageService) Get(ctx context.Context, tenant entity.Tenant, sessionId, messageId uuid.UUID) (message *entity.Message, err error) {
	const op = "message.get"
	ctx, span := startSpan(ctx, "memory.message.get", tenant)
	defer func() { endSpan(span, err) }()

	if err := checkInput(op, tenant, nil); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	message, err = uow.MessageRepository().FindOne(ctx, contract.MessageLookup{
		Tenant:    tenant,
		SessionId: sessionId,
		Id:        messageId,
	})
	if err != nil {
		return nil, s.classify(messageModule, op, "message", err)
	}
	if message == nil {
		return nil, apperror.NotFound(op, "message")
	}
	return message, nil
}

func (s *messageService) List(ctx context.Context, tenant entity.Tenant, sessionId uuid.UUID) (seq contract.Sequence[entity.Message], err error) {
	const op = "message.list"
	_, span := startSpan(ctx, "memory.message.list", tenant)
	defer func() { endSpan(span, err) }()

	if err := checkInput(op, tenant, nil); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	inner := uow.MessageRepository().FindAll(ctx, contract.MessageQuery{
		Tenant:    tenant,
		SessionId: sessionId,
	})
	return wrapSequence(inner, op, "message"), nil
}
