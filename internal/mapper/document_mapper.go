package mapper

import (
	"slices"

	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) DocumentToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	return &entity.Document{
		Id:           d.Id,
		CollectionId: d.CollectionId,
		Content:      d.Content,
		Metadata:     metadataToEntity(d.Metadata),
		Embedding:    d.Embedding.Slice(),
		CreatedAt:    d.CreatedAt,
	}
}

func (m *DocumentMapper) DocumentToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	return &model.Document{
		Id:           d.Id,
		CollectionId: d.CollectionId,
		Content:      d.Content,
		Metadata:     metadataToModel(d.Metadata),
		Embedding:    pgvector.NewVector(slices.Clone(d.Embedding)),
		CreatedAt:    d.CreatedAt,
	}
}

func (m *DocumentMapper) ScoredDocumentToEntity(d *model.ScoredDocument) *entity.ScoredDocument {
	if d == nil {
		return nil
	}

	return &entity.ScoredDocument{
		Document: m.DocumentToEntity(&d.Document),
		Distance: d.Distance,
	}
}
