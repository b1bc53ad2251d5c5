package mapper

import (
	"testing"
	"time"

	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/model"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
)

func TestSessionMapperMetadataNeverNil(t *testing.T) {
	m := NewSessionMapper()
	s := &entity.Session{Id: uuid.New(), AppId: "a1", UserId: "u1", IsActive: true}

	row := m.SessionToModel(s)
	assert.NotNil(t, row.Metadata)
	assert.Empty(t, row.Metadata)

	back := m.SessionToEntity(&model.Session{Id: s.Id, AppId: "a1", UserId: "u1"})
	assert.NotNil(t, back.Metadata)
}

func TestSessionMapperCopiesMetadata(t *testing.T) {
	m := NewSessionMapper()
	meta := map[string]interface{}{"k": "v"}
	row := m.MessageToModel(&entity.Message{Id: uuid.New(), Metadata: meta})

	meta["k"] = "changed"
	assert.Equal(t, "v", row.Metadata["k"])
}

func TestDocumentMapperRoundTrip(t *testing.T) {
	m := NewDocumentMapper()
	now := time.Now().UTC()
	doc := &entity.Document{
		Id:           uuid.New(),
		CollectionId: uuid.New(),
		Content:      "the cat sat",
		Metadata:     map[string]interface{}{"source": "test"},
		Embedding:    []float32{1, 0, 0},
		CreatedAt:    now,
	}

	got := m.DocumentToEntity(m.DocumentToModel(doc))
	assert.Equal(t, doc, got)

	scored := m.ScoredDocumentToEntity(&model.ScoredDocument{
		Document: model.Document{Id: doc.Id, Embedding: pgvector.NewVector([]float32{0, 1})},
		Distance: 0.25,
	})
	assert.Equal(t, doc.Id, scored.Document.Id)
	assert.Equal(t, 0.25, scored.Distance)
	assert.Nil(t, m.ScoredDocumentToEntity(nil))
}
