package dto

import "github.com/google/uuid"

type CreateSessionRequest struct {
	LocationId *string                `json:"location_id" validate:"omitempty,max=512"`
	Metadata   map[string]interface{} `json:"metadata"`
}

type UpdateSessionRequest struct {
	Metadata Optional[map[string]interface{}] `json:"metadata"`
}

type CreateMessageRequest struct {
	IsUser   bool                   `json:"is_user"`
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata"`
}

type CreateMetamessageRequest struct {
	MessageId       uuid.UUID              `json:"message_id"`
	MetamessageType string                 `json:"metamessage_type" validate:"required,max=512"`
	Content         string                 `json:"content"`
	Metadata        map[string]interface{} `json:"metadata"`
}

// MetamessageFilter narrows a metamessage listing. Both fields are optional and independent.
type MetamessageFilter struct {
	MessageId       *uuid.UUID
	MetamessageType *string
}
