package database

import (
	"fmt"

	"chat-memory-be/internal/model"

	"gorm.io/gorm"
)

// DocumentsDDL returns the statements for the documents table. The table is
// not auto-migrated because the vector column needs a fixed dimension.
//
// Similarity search is exact: no ANN index is created on embedding, and one
// left by an older schema is dropped. An HNSW scan applies the collection and
// tenant filters after ef_search candidates and can return fewer than top_k rows.
func DocumentsDDL(dimensions int) []string {
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS documents (
	id uuid PRIMARY KEY,
	collection_id uuid NOT NULL REFERENCES collections(id) ON DELETE RESTRICT,
	content text NOT NULL,
	metadata jsonb NOT NULL DEFAULT '{}',
	embedding vector(%d) NOT NULL,
	created_at timestamptz NOT NULL
)`, dimensions),
		`CREATE INDEX IF NOT EXISTS idx_documents_collection_created ON documents (collection_id, created_at)`,
		`DROP INDEX IF EXISTS idx_documents_embedding_hnsw`,
	}
	return stmts
}

// Migrate creates the schema idempotently. It is safe to run at every start.
func Migrate(db *gorm.DB, dimensions int) error {
	if dimensions <= 0 {
		return fmt.Errorf("embedding dimensions must be positive, got %d", dimensions)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS vector`).Error; err != nil {
		return fmt.Errorf("enable pgvector: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Session{},
		&model.Message{},
		&model.Metamessage{},
		&model.Collection{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range DocumentsDDL(dimensions) {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("documents schema: %w", err)
		}
	}
	return nil
}
