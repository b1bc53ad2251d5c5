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

type MetamessageRepositoryImpl struct {
	table *gormTable[model.Metamessage, entity.Metamessage]
}

func NewMetamessageRepository(db *gorm.DB) contract.MetamessageRepository {
	m := mapper.NewSessionMapper()
	return &MetamessageRepositoryImpl{
		table: &gormTable[model.Metamessage, entity.Metamessage]{
			db:       db,
			toModel:  m.MetamessageToModel,
			toEntity: m.MetamessageToEntity,
		},
	}
}

func (r *MetamessageRepositoryImpl) Create(ctx context.Context, metamessage *entity.Metamessage) error {
	return r.table.create(ctx, metamessage)
}

func (r *MetamessageRepositoryImpl) FindOne(ctx context.Context, lookup contract.MetamessageLookup) (*entity.Metamessage, error) {
	return r.table.findOne(ctx,
		specification.SelectTable{Table: "metamessages"},
		specification.MetamessageInSession{Tenant: lookup.Tenant, SessionId: lookup.SessionId},
		specification.ByMessageID{MessageID: lookup.MessageId},
		specification.ByID{Table: "metamessages", ID: lookup.Id},
	)
}

func (r *MetamessageRepositoryImpl) FindAll(ctx context.Context, query contract.MetamessageQuery) contract.Sequence[entity.Metamessage] {
	specs := []specification.Specification{
		specification.MetamessageInSession{Tenant: query.Tenant, SessionId: query.SessionId},
	}
	if query.MessageId != nil {
		specs = append(specs, specification.ByMessageID{MessageID: *query.MessageId})
	}
	if query.MetamessageType != nil {
		specs = append(specs, specification.ByMetamessageType{MetamessageType: *query.MetamessageType})
	}
	return r.table.sequence("metamessages", specs, scope.OrderByCreatedAscIn("metamessages"))
}
