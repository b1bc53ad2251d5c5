package main

import (
	"log"

	"chat-memory-be/internal/config"
	"chat-memory-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.LogLevel)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	defer database.Close(db)

	// 3. Extensions, tables and the vector index
	log.Printf("Starting migration (embedding dimensions: %d)...", cfg.Embedding.Dimensions)
	if err := database.Migrate(db, cfg.Embedding.Dimensions); err != nil {
		log.Fatal("Error: Migration failed:", err)
	}

	log.Println("Migration completed successfully")
}
