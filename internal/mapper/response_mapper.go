package mapper

import (
	"chat-memory-be/internal/dto"
	"chat-memory-be/internal/entity"
)

// Response Mappers

func SessionToResponse(s *entity.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:         s.Id,
		AppId:      s.AppId,
		UserId:     s.UserId,
		LocationId: s.LocationId,
		IsActive:   s.IsActive,
		Metadata:   cloneMetadata(s.Metadata),
		CreatedAt:  s.CreatedAt,
	}
}

func MessageToResponse(m *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:        m.Id,
		SessionId: m.SessionId,
		IsUser:    m.IsUser,
		Content:   m.Content,
		Metadata:  cloneMetadata(m.Metadata),
		CreatedAt: m.CreatedAt,
	}
}

func MetamessageToResponse(m *entity.Metamessage) *dto.MetamessageResponse {
	return &dto.MetamessageResponse{
		Id:              m.Id,
		MessageId:       m.MessageId,
		MetamessageType: m.MetamessageType,
		Content:         m.Content,
		Metadata:        cloneMetadata(m.Metadata),
		CreatedAt:       m.CreatedAt,
	}
}

func CollectionToResponse(c *entity.Collection) *dto.CollectionResponse {
	return &dto.CollectionResponse{
		Id:        c.Id,
		AppId:     c.AppId,
		UserId:    c.UserId,
		Name:      c.Name,
		Metadata:  cloneMetadata(c.Metadata),
		CreatedAt: c.CreatedAt,
	}
}

func DocumentToResponse(d *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:           d.Id,
		CollectionId: d.CollectionId,
		Content:      d.Content,
		Metadata:     cloneMetadata(d.Metadata),
		CreatedAt:    d.CreatedAt,
	}
}

func ScoredDocumentToResponse(sd *entity.ScoredDocument) *dto.DocumentResponse {
	res := DocumentToResponse(sd.Document)
	distance := sd.Distance
	res.Distance = &distance
	return res
}
