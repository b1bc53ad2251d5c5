package bootstrap

import (
	"context"
	"fmt"
	"log"

	"chat-memory-be/internal/config"
	"chat-memory-be/internal/controller"
	"chat-memory-be/internal/pkg/logger"
	"chat-memory-be/internal/repository/memory"
	"chat-memory-be/internal/repository/unitofwork"
	"chat-memory-be/internal/service"
	"chat-memory-be/internal/websocket"
	"chat-memory-be/pkg/database"
	"chat-memory-be/pkg/embedding"
	"chat-memory-be/pkg/events"

	pktNats "chat-memory-be/pkg/nats"

	"github.com/redis/go-redis/v9"
)

// Container holds the memory services and the HTTP controllers built on them.
type Container struct {
	SessionService     service.ISessionService
	MessageService     service.IMessageService
	MetamessageService service.IMetamessageService
	CollectionService  service.ICollectionService
	DocumentService    service.IDocumentService

	SessionController    controller.ISessionController
	CollectionController controller.ICollectionController

	Hub    *websocket.Hub
	Logger logger.ILogger

	store   unitofwork.RepositoryFactory
	closers []func()
}

func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{}
	sysLogger := logger.NewZapLogger(logger.Options{
		FilePath:   cfg.App.LogFilePath,
		Production: cfg.IsProduction(),
		Level:      cfg.App.LogLevel,
	})
	c.Logger = sysLogger
	c.closers = append(c.closers, func() { _ = sysLogger.Sync() })

	// 1. Entity Store
	uowFactory, err := c.newRepositoryFactory(cfg)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.store = uowFactory

	// 2. Embedding Provider
	provider, err := c.newEmbeddingProvider(ctx, cfg)
	if err != nil {
		c.Close()
		return nil, err
	}

	// 3. Event Bus, plus the websocket hub for live per-tenant streams
	bus, err := c.newPublisher(ctx, cfg)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Hub = websocket.NewHub(sysLogger)
	go c.Hub.Run()
	c.closers = append(c.closers, c.Hub.Close)
	publisher := events.Fanout(bus, c.Hub)

	// 4. Services
	c.SessionService = service.NewSessionService(uowFactory, publisher, sysLogger)
	c.MessageService = service.NewMessageService(uowFactory, sysLogger)
	c.MetamessageService = service.NewMetamessageService(uowFactory, sysLogger)
	c.CollectionService = service.NewCollectionService(uowFactory, publisher, sysLogger)
	c.DocumentService = service.NewDocumentService(uowFactory, provider, publisher, sysLogger, service.DocumentOptions{
		Dimensions:  cfg.Embedding.Dimensions,
		DefaultTopK: cfg.Query.DefaultTopK,
		MaxTopK:     cfg.Query.MaxTopK,
	})

	// 5. Controllers
	c.SessionController = controller.NewSessionController(c.SessionService, c.MessageService, c.MetamessageService)
	c.CollectionController = controller.NewCollectionController(c.CollectionService, c.DocumentService)

	return c, nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Ping checks the entity store; used by the health route.
func (c *Container) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

func (c *Container) newRepositoryFactory(cfg *config.Config) (unitofwork.RepositoryFactory, error) {
	switch cfg.Database.Driver {
	case "memory":
		log.Printf("[INFO] Using Entity Store: MEMORY")
		return memory.NewRepositoryFactory(memory.NewStore()), nil
	case "postgres":
		if cfg.Database.Connection == "" {
			return nil, fmt.Errorf("DB_CONNECTION_STRING is not set")
		}
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.LogLevel, database.WithPool(database.Pool{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		}))
		if err != nil {
			return nil, fmt.Errorf("unable to connect to database: %w", err)
		}
		c.closers = append(c.closers, func() { _ = database.Close(db) })

		if cfg.Database.AutoMigrate {
			if err := database.Migrate(db, cfg.Embedding.Dimensions); err != nil {
				return nil, err
			}
		}
		log.Printf("[INFO] Using Entity Store: POSTGRES")
		return unitofwork.NewRepositoryFactory(db), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Database.Driver)
	}
}

func (c *Container) newEmbeddingProvider(ctx context.Context, cfg *config.Config) (embedding.Provider, error) {
	provider, err := embedding.New(ctx, embedding.Config{
		Provider:      cfg.Embedding.Provider,
		Model:         cfg.Embedding.Model,
		Dimensions:    cfg.Embedding.Dimensions,
		OpenAIKey:     cfg.Embedding.OpenAIKey,
		JinaKey:       cfg.Embedding.JinaKey,
		OllamaBaseURL: cfg.Embedding.OllamaBaseURL,
		GeminiKey:     cfg.Embedding.GeminiKey,
	})
	if err != nil {
		return nil, err
	}
	if closer, ok := provider.(interface{ Close() error }); ok {
		c.closers = append(c.closers, func() { _ = closer.Close() })
	}
	log.Printf("[INFO] Using Embedding Provider: %s", cfg.Embedding.Provider)

	model := cfg.Embedding.Provider + "/" + cfg.Embedding.Model
	switch cfg.Embedding.Cache {
	case "memory":
		return embedding.NewCachedProvider(provider, embedding.NewMemoryCache(cfg.Embedding.CacheTTL), model), nil
	case "redis":
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			// Misses fall through to the provider, so a down cache only costs latency.
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
		return embedding.NewCachedProvider(provider, embedding.NewRedisCache(rdb, cfg.Embedding.CacheTTL), model), nil
	case "", "none":
		return provider, nil
	default:
		return nil, fmt.Errorf("unknown embedding cache %q", cfg.Embedding.Cache)
	}
}

func (c *Container) newPublisher(ctx context.Context, cfg *config.Config) (events.Publisher, error) {
	var publisher events.Publisher
	switch cfg.Events.Driver {
	case "", "none":
		return events.NopPublisher{}, nil
	case "gochannel":
		publisher = events.NewWatermillPublisher(events.NewGoChannel())
	case "nats":
		natsPub, err := pktNats.NewPublisher(ctx, cfg.Events.NatsURL)
		if err != nil {
			return nil, err
		}
		publisher = natsPub
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Events.Driver)
	}
	c.closers = append(c.closers, publisher.Close)
	return publisher, nil
}
