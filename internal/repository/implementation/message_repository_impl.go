package implementation

import (
	"context"

	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/mapper"
	"chat-memory-be/internal/model"
	"chat-memory-be/internal/repository/contract"
	"chat-memory-be/internal/repository/scope"
	"chat-memory-be/internal/repository/specification"

	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	table *gormTable[model.Message, entity.Message]
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	m := mapper.NewSessionMapper()
	return &MessageRepositoryImpl{
		table: &gormTable[model.Message, entity.Message]{
			db:       db,
			toModel:  m.MessageToModel,
			toEntity: m.MessageToEntity,
		},
	}
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *entity.Message) error {
	return r.table.create(ctx, message)
}

func (r *MessageRepositoryImpl) FindOne(ctx context.Context, lookup contract.MessageLookup) (*entity.Message, error) {
	return r.table.findOne(ctx,
		specification.SelectTable{Table: "messages"},
		specification.MessageInSession{Tenant: lookup.Tenant, SessionId: lookup.SessionId},
		specification.ByID{Table: "messages", ID: lookup.Id},
	)
}

func (r *MessageRepositoryImpl) FindAll(ctx context.Context, query contract.MessageQuery) contract.Sequence[entity.Message] {
	specs := []specification.Specification{
		specification.MessageInSession{Tenant: query.Tenant, SessionId: query.SessionId},
	}
	return r.table.sequence("messages", specs, scope.OrderByCreatedAscIn("messages"))
}
