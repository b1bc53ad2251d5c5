package specification

import (
	"chat-memory-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedByTenant scopes a root table (sessions, collections) to the tenant.
type OwnedByTenant struct {
	Table  string
	Tenant entity.Tenant
}

func (s OwnedByTenant) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Where(Column(s.Table, "app_id")+" = ?", s.Tenant.AppId).
		Where(Column(s.Table, "user_id")+" = ?", s.Tenant.UserId)
}

// MessageInSession scopes messages to a session reachable from the tenant.
type MessageInSession struct {
	Tenant    entity.Tenant
	SessionId uuid.UUID
}

func (s MessageInSession) Apply(db *gorm.DB) *gorm.DB {
	db = db.Joins("JOIN sessions ON sessions.id = messages.session_id").
		Where("messages.session_id = ?", s.SessionId)
	return OwnedByTenant{Table: "sessions", Tenant: s.Tenant}.Apply(db)
}

// MetamessageInSession scopes metamessages through message -> session -> tenant.
type MetamessageInSession struct {
	Tenant    entity.Tenant
	SessionId uuid.UUID
}

func (s MetamessageInSession) Apply(db *gorm.DB) *gorm.DB {
	db = db.Joins("JOIN messages ON messages.id = metamessages.message_id").
		Joins("JOIN sessions ON sessions.id = messages.session_id").
		Where("messages.session_id = ?", s.SessionId)
	return OwnedByTenant{Table: "sessions", Tenant: s.Tenant}.Apply(db)
}

// DocumentInCollection scopes documents to a collection reachable from the tenant.
type DocumentInCollection struct {
	Tenant       entity.Tenant
	CollectionId uuid.UUID
}

func (s DocumentInCollection) Apply(db *gorm.DB) *gorm.DB {
	db = db.Joins("JOIN collections ON collections.id = documents.collection_id").
		Where("documents.collection_id = ?", s.CollectionId)
	return OwnedByTenant{Table: "collections", Tenant: s.Tenant}.Apply(db)
}
