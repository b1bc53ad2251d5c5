package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Message struct {
	Id        uuid.UUID         `gorm:"type:uuid;primaryKey"`
	SessionId uuid.UUID         `gorm:"type:uuid;not null;index:idx_messages_session_created,priority:1"`
	Session   *Session          `gorm:"foreignKey:SessionId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	IsUser    bool              `gorm:"not null"`
	Content   string            `gorm:"type:text;not null"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt time.Time         `gorm:"not null;index:idx_messages_session_created,priority:2"`
}

func (Message) TableName() string {
	return "messages"
}

type Metamessage struct {
	Id              uuid.UUID         `gorm:"type:uuid;primaryKey"`
	MessageId       uuid.UUID         `gorm:"type:uuid;not null;index:idx_metamessages_message_created,priority:1"`
	Message         *Message          `gorm:"foreignKey:MessageId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	MetamessageType string            `gorm:"type:varchar(512);not null;index"`
	Content         string            `gorm:"type:text;not null"`
	Metadata        datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt       time.Time         `gorm:"not null;index:idx_metamessages_message_created,priority:2"`
}

func (Metamessage) TableName() string {
	return "metamessages"
}
