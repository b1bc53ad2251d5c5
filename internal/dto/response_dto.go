package dto

import (
	"time"

	"github.com/google/uuid"
)

type SessionResponse struct {
	Id         uuid.UUID              `json:"id"`
	AppId      string                 `json:"app_id"`
	UserId     string                 `json:"user_id"`
	LocationId *string                `json:"location_id"`
	IsActive   bool                   `json:"is_active"`
	Metadata   map[string]interface{} `json:"metadata"`
	CreatedAt  time.Time              `json:"created_at"`
}

type MessageResponse struct {
	Id        uuid.UUID              `json:"id"`
	SessionId uuid.UUID              `json:"session_id"`
	IsUser    bool                   `json:"is_user"`
	Content   string                 `json:"content"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
}

type MetamessageResponse struct {
	Id              uuid.UUID              `json:"id"`
	MessageId       uuid.UUID              `json:"message_id"`
	MetamessageType string                 `json:"metamessage_type"`
	Content         string                 `json:"content"`
	Metadata        map[string]interface{} `json:"metadata"`
	CreatedAt       time.Time              `json:"created_at"`
}

type CollectionResponse struct {
	Id        uuid.UUID              `json:"id"`
	AppId     string                 `json:"app_id"`
	UserId    string                 `json:"user_id"`
	Name      string                 `json:"name"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
}

// DocumentResponse leaves the embedding out; clients never need the raw vector.
type DocumentResponse struct {
	Id           uuid.UUID              `json:"id"`
	CollectionId uuid.UUID              `json:"collection_id"`
	Content      string                 `json:"content"`
	Metadata     map[string]interface{} `json:"metadata"`
	CreatedAt    time.Time              `json:"created_at"`
	Distance     *float64               `json:"distance,omitempty"`
}
