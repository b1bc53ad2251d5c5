package entity

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	Id         uuid.UUID
	AppId      string
	UserId     string
	LocationId *string
	IsActive   bool
	Metadata   map[string]interface{}
	CreatedAt  time.Time
}

type Message struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	IsUser    bool
	Content   string
	Metadata  map[string]interface{}
	CreatedAt time.Time
}

type Metamessage struct {
	Id              uuid.UUID
	MessageId       uuid.UUID
	MetamessageType string
	Content         string
	Metadata        map[string]interface{}
	CreatedAt       time.Time
}
