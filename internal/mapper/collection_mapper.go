package mapper

import (
	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/model"
)

type CollectionMapper struct{}

func NewCollectionMapper() *CollectionMapper {
	return &CollectionMapper{}
}

func (m *CollectionMapper) CollectionToEntity(c *model.Collection) *entity.Collection {
	if c == nil {
		return nil
	}

	return &entity.Collection{
		Id:        c.Id,
		AppId:     c.AppId,
		UserId:    c.UserId,
		Name:      c.Name,
		Metadata:  metadataToEntity(c.Metadata),
		CreatedAt: c.CreatedAt,
	}
}

func (m *CollectionMapper) CollectionToModel(c *entity.Collection) *model.Collection {
	if c == nil {
		return nil
	}

	return &model.Collection{
		Id:        c.Id,
		AppId:     c.AppId,
		UserId:    c.UserId,
		Name:      c.Name,
		Metadata:  metadataToModel(c.Metadata),
		CreatedAt: c.CreatedAt,
	}
}
