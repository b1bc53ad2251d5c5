package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Collection struct {
	Id        uuid.UUID         `gorm:"type:uuid;primaryKey"`
	AppId     string            `gorm:"type:varchar(512);not null;uniqueIndex:uq_collections_tenant_name,priority:1;index:idx_collections_tenant_created,priority:1"`
	UserId    string            `gorm:"type:varchar(512);not null;uniqueIndex:uq_collections_tenant_name,priority:2;index:idx_collections_tenant_created,priority:2"`
	Name      string            `gorm:"type:varchar(512);not null;uniqueIndex:uq_collections_tenant_name,priority:3"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt time.Time         `gorm:"not null;index:idx_collections_tenant_created,priority:3"`
}

func (Collection) TableName() string {
	return "collections"
}
