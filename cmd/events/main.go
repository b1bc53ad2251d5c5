package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"chat-memory-be/internal/config"
	"chat-memory-be/internal/pkg/logger"
	"chat-memory-be/pkg/events"

	pktNats "chat-memory-be/pkg/nats"
)

// Tails the memory event stream and logs every event.
func main() {
	filter := flag.String("filter", events.SubjectPrefix+">", "subject filter")
	durable := flag.String("durable", "memory-events-tail", "durable consumer name")
	flag.Parse()

	cfg := config.Load()
	sysLogger := logger.NewConsoleLogger()
	defer sysLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sub, err := pktNats.NewSubscriber(ctx, cfg.Events.NatsURL)
	if err != nil {
		log.Fatal("Error: Failed to connect to NATS:", err)
	}
	defer sub.Close()

	err = sub.Subscribe(ctx, *filter, *durable, func(ctx context.Context, event events.Event) error {
		sysLogger.Info("EVENTS", event.EventType(), map[string]interface{}{
			"occurred_at": event.Timestamp(),
			"data":        event.Payload(),
		})
		return nil
	})
	if err != nil {
		log.Fatal("Error: Failed to subscribe:", err)
	}

	log.Printf("Listening on %s (durable %s)", *filter, *durable)
	<-ctx.Done()
}
