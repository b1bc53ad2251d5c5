package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"chat-memory-be/internal/apperror"
	"chat-memory-be/internal/bootstrap"
	"chat-memory-be/internal/config"
	"chat-memory-be/internal/dto"
	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/tracer"
)

var demoDocuments = []dto.CreateDocumentRequest{
	{Content: "The user prefers short answers with code samples.", Metadata: map[string]interface{}{"kind": "preference"}},
	{Content: "The user is learning Go and works on backend services.", Metadata: map[string]interface{}{"kind": "profile"}},
	{Content: "The user has a cat named Miso.", Metadata: map[string]interface{}{"kind": "fact"}},
}

func main() {
	appId := flag.String("app", "demo-app", "application id of the seeded tenant")
	userId := flag.String("user", "demo-user", "user id of the seeded tenant")
	flag.Parse()

	ctx := context.Background()
	cfg := config.Load()

	shutdown := tracer.InitTracer(ctx, cfg.Tracing)
	defer shutdown(ctx)

	c, err := bootstrap.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatal("Error: Failed to build container:", err)
	}
	defer c.Close()

	tenant := entity.NewTenant(*appId, *userId)
	log.Printf("Seeding tenant %s/%s...", tenant.AppId, tenant.UserId)

	// 1. Session with a short exchange
	location := "onboarding"
	session, err := c.SessionService.Create(ctx, tenant, &dto.CreateSessionRequest{
		LocationId: &location,
		Metadata:   map[string]interface{}{"source": "seed"},
	})
	if err != nil {
		log.Fatal("Error: Failed to create session:", err)
	}

	question, err := c.MessageService.Create(ctx, tenant, session.Id, &dto.CreateMessageRequest{IsUser: true, Content: "What can you remember about me?"})
	if err != nil {
		log.Fatal("Error: Failed to create message:", err)
	}
	if _, err := c.MessageService.Create(ctx, tenant, session.Id, &dto.CreateMessageRequest{Content: "Only what you tell me in this app."}); err != nil {
		log.Fatal("Error: Failed to create message:", err)
	}
	if _, err := c.MetamessageService.Create(ctx, tenant, session.Id, &dto.CreateMetamessageRequest{
		MessageId:       question.Id,
		MetamessageType: "intent",
		Content:         "memory_probe",
	}); err != nil {
		log.Fatal("Error: Failed to create metamessage:", err)
	}

	// 2. Collection with a few facts
	collection, err := c.CollectionService.GetByName(ctx, tenant, "profile")
	if errors.Is(err, apperror.ErrNotFound) {
		collection, err = c.CollectionService.Create(ctx, tenant, &dto.CreateCollectionRequest{Name: "profile"})
	}
	if err != nil {
		log.Fatal("Error: Failed to prepare collection:", err)
	}
	for i := range demoDocuments {
		if _, err := c.DocumentService.Create(ctx, tenant, collection.Id, &demoDocuments[i]); err != nil {
			log.Fatal("Error: Failed to create document:", err)
		}
	}

	// 3. Show what a query sees
	results, err := c.DocumentService.Query(ctx, tenant, collection.Id, &dto.QueryDocumentsRequest{Query: "pets", TopK: 3})
	if err != nil {
		log.Fatal("Error: Query failed:", err)
	}
	for _, r := range results {
		log.Printf("  %.4f  %s", r.Distance, r.Document.Content)
	}

	log.Printf("Seeded session %s and collection %s", session.Id, collection.Id)
}
