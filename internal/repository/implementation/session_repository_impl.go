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

type SessionRepositoryImpl struct {
	table *gormTable[model.Session, entity.Session]
}

func NewSessionRepository(db *gorm.DB) contract.SessionRepository {
	m := mapper.NewSessionMapper()
	return &SessionRepositoryImpl{
		table: &gormTable[model.Session, entity.Session]{
			db:       db,
			toModel:  m.SessionToModel,
			toEntity: m.SessionToEntity,
		},
	}
}

func (r *SessionRepositoryImpl) Create(ctx context.Context, session *entity.Session) error {
	return r.table.create(ctx, session)
}

func (r *SessionRepositoryImpl) Update(ctx context.Context, session *entity.Session) error {
	return r.table.save(ctx, session)
}

func (r *SessionRepositoryImpl) FindOne(ctx context.Context, lookup contract.SessionLookup) (*entity.Session, error) {
	specs := []specification.Specification{
		specification.ByID{Table: "sessions", ID: lookup.Id},
		specification.ByAppID{AppID: lookup.AppId},
	}
	if lookup.UserId != nil {
		specs = append(specs, specification.ByUserID{UserID: *lookup.UserId})
	}
	return r.table.findOne(ctx, specs...)
}

func (r *SessionRepositoryImpl) FindAll(ctx context.Context, query contract.SessionQuery) contract.Sequence[entity.Session] {
	specs := []specification.Specification{
		specification.OwnedByTenant{Table: "sessions", Tenant: query.Tenant},
	}
	if query.LocationId != nil {
		specs = append(specs, specification.ByLocationID{LocationID: *query.LocationId})
	}
	if query.ActiveOnly {
		specs = append(specs, specification.Scope(scope.ActiveSessions))
	}
	return r.table.sequence("sessions", specs, scope.OrderByCreatedAscIn("sessions"))
}
