package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Session struct {
	Id         uuid.UUID         `gorm:"type:uuid;primaryKey"`
	AppId      string            `gorm:"type:varchar(512);not null;index:idx_sessions_tenant_created,priority:1"`
	UserId     string            `gorm:"type:varchar(512);not null;index:idx_sessions_tenant_created,priority:2"`
	LocationId *string           `gorm:"type:varchar(512);index"`
	IsActive   bool              `gorm:"not null;default:true"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt  time.Time         `gorm:"not null;index:idx_sessions_tenant_created,priority:3"`
}

func (Session) TableName() string {
	return "sessions"
}
