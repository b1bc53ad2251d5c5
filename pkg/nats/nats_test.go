package nats

import (
	"context"
	"os"
	"testing"
	"time"

	"chat-memory-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSubscribeRoundTrip(t *testing.T) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("Skipping NATS test: NATS_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pub, err := NewPublisher(ctx, url)
	require.NoError(t, err)
	defer pub.Close()

	sub, err := NewSubscriber(ctx, url)
	require.NoError(t, err)
	defer sub.Close()

	marker := uuid.NewString()
	received := make(chan events.Event, 16)
	durable := "test-" + uuid.NewString()[:8]
	err = sub.Subscribe(ctx, events.SubjectPrefix+events.DocumentUpserted, durable, func(ctx context.Context, e events.Event) error {
		received <- e
		return nil
	})
	require.NoError(t, err)
	defer func() { _ = sub.js.DeleteConsumer(context.Background(), StreamName, durable) }()

	require.NoError(t, pub.Publish(ctx, events.New(events.DocumentUpserted, map[string]interface{}{"document_id": marker})))

	// The durable may replay older events on the subject; wait for ours.
	for {
		select {
		case e := <-received:
			if e.Payload()["document_id"] == marker {
				assert.Equal(t, events.DocumentUpserted, e.EventType())
				return
			}
		case <-ctx.Done():
			t.Fatal("event not delivered")
		}
	}
}
