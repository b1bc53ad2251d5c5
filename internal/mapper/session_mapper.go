package mapper

import (
	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/model"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

// Session Mappers

func (m *SessionMapper) SessionToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}

	return &entity.Session{
		Id:         s.Id,
		AppId:      s.AppId,
		UserId:     s.UserId,
		LocationId: s.LocationId,
		IsActive:   s.IsActive,
		Metadata:   metadataToEntity(s.Metadata),
		CreatedAt:  s.CreatedAt,
	}
}

func (m *SessionMapper) SessionToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}

	return &model.Session{
		Id:         s.Id,
		AppId:      s.AppId,
		UserId:     s.UserId,
		LocationId: s.LocationId,
		IsActive:   s.IsActive,
		Metadata:   metadataToModel(s.Metadata),
		CreatedAt:  s.CreatedAt,
	}
}

// Message Mappers

func (m *SessionMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	return &entity.Message{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		IsUser:    msg.IsUser,
		Content:   msg.Content,
		Metadata:  metadataToEntity(msg.Metadata),
		CreatedAt: msg.CreatedAt,
	}
}

func (m *SessionMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	return &model.Message{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		IsUser:    msg.IsUser,
		Content:   msg.Content,
		Metadata:  metadataToModel(msg.Metadata),
		CreatedAt: msg.CreatedAt,
	}
}

// Metamessage Mappers

func (m *SessionMapper) MetamessageToEntity(mm *model.Metamessage) *entity.Metamessage {
	if mm == nil {
		return nil
	}

	return &entity.Metamessage{
		Id:              mm.Id,
		MessageId:       mm.MessageId,
		MetamessageType: mm.MetamessageType,
		Content:         mm.Content,
		Metadata:        metadataToEntity(mm.Metadata),
		CreatedAt:       mm.CreatedAt,
	}
}

func (m *SessionMapper) MetamessageToModel(mm *entity.Metamessage) *model.Metamessage {
	if mm == nil {
		return nil
	}

	return &model.Metamessage{
		Id:              mm.Id,
		MessageId:       mm.MessageId,
		MetamessageType: mm.MetamessageType,
		Content:         mm.Content,
		Metadata:        metadataToModel(mm.Metadata),
		CreatedAt:       mm.CreatedAt,
	}
}
