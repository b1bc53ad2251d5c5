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

const metamessageModule = "METAMESSAGE"

// IMetamessageService is append-only. Every lookup goes message -> session -> tenant.
type IMetamessageService interface {
	Create(ctx context.Context, tenant entity.Tenant, sessionId uuid.UUID, req *dto.CreateMetamessageRequest) (*entity.Metamessage, error)
	Get(ctx context.Context, tenant entity.Tenant, sessionId, messageId, metamessageId uuid.UUID) (*entity.Metamessage, error)
	List(ctx context.Context, tenant entity.Tenant, sessionId uuid.UUID, filter dto.MetamessageFilter) (contract.Sequence[entity.Metamessage], error)
}

type metamessageService struct {
	base
}

func NewMetamessageService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) IMetamessageService {
	return &metamessageService{base: newBase(uowFactory, nil, logger)}
}

func (s *metamessageService) Create(ctx context.Context, tenant entity.Tenant, sessionId uuid.UUID, req *dto.CreateMetamessageRequest) (metamessage *entity.Metamessage, err error) {
	const op = "metamessage.create"
	ctx, span := startSpan(ctx, "memory.metamessage.create", tenant)
	defer func() { endSpan(span, err) }()

	if req == nil {
		return nil, apperror.InvalidArgument(op, errMissingRequest)
	}
	if err := checkInput(op, tenant, req); err != nil {
		return nil, err
	}

	metamessage = &entity.Metamessage{
		Id:              uuid.New(),
		MessageId:       req.MessageId,
		MetamessageType: req.MetamessageType,
		Content:         req.Content,
		Metadata:        req.Metadata,
		CreatedAt:       s.now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	err = inTransaction(ctx, uow, func() error {
		message, err := uow.MessageRepository().FindOne(ctx, contract.MessageLookup{
			Tenant:    tenant,
			SessionId: sessionId,
			Id:        req.MessageId,
		})
		if err != nil {
			return err
		}
		if message == nil {
			return apperror.NotFound(op, "message")
		}
		return uow.MetamessageRepository().Create(ctx, metamessage)
	})
	if err != nil {
		return nil, s.classify(metamessageModule, op, "message", err)
	}
	return metamessage, nil
}

func (s *metamessageService) Get(ctx context.Context, tenant entity.Tenant, sessionId, messageId, metamessageId uuid.UUID) (metamessage *entity.Metamessage, err error) {
	const op = "metamessage.get"
	ctx, span := startSpan(ctx, "memory.metamessage.get", tenant)
	defer func() { endSpan(span, err) }()

	if err := checkInput(op, tenant, nil); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	metamessage, err = uow.MetamessageRepository().FindOne(ctx, contract.MetamessageLookup{
		Tenant:    tenant,
		SessionId: sessionId,
		MessageId: messageId,
		Id:        metamessageId,
	})
	if err != nil {
		return nil, s.classify(metamessageModule, op, "metamessage", err)
	}
	if metamessage == nil {
		return nil, apperror.NotFound(op, "metamessage")
	}
	return metamessage, nil
}

func (s *metamessageService) List(ctx context.Context, tenant entity.Tenant, sessionId uuid.UUID, filter dto.MetamessageFilter) (seq contract.Sequence[entity.Metamessage], err error) {
	const op = "metamessage.list"
	_, span := startSpan(ctx, "memory.metamessage.list", tenant)
	defer func() { endSpan(span, err) }()

	if err := checkInput(op, tenant, nil); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	inner := uow.MetamessageRepository().FindAll(ctx, contract.MetamessageQuery{
		Tenant:          tenant,
		SessionId:       sessionId,
		MessageId:       filter.MessageId,
		MetamessageType: filter.MetamessageType,
	})
	return wrapSequence(inner, op, "metamessage"), nil
}
