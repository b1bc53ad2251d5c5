package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	e := New(CollectionDeleted, map[string]interface{}{"collection_id": "c1", "documents_removed": 3})

	raw, err := Encode(e)
	require.NoError(t, err)

	got, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, CollectionDeleted, got.Type)
	assert.Equal(t, "c1", got.Data["collection_id"])
	assert.EqualValues(t, 3, got.Data["documents_removed"])
	assert.True(t, e.OccurredAt.Equal(got.OccurredAt))
	assert.Equal(t, "memory.COLLECTION_DELETED", Subject(e))
}

func TestWatermillPublisherDelivers(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	bus := NewGoChannel()
	pub := NewWatermillPublisher(bus)
	defer pub.Close()

	messages, err := bus.Subscribe(ctx, SubjectPrefix+SessionCreated)
	require.NoError(t, err)

	require.NoError(t, pub.Publish(ctx, New(SessionCreated, map[string]interface{}{"session_id": "s1"})))

	select {
	case msg := <-messages:
		got, err := Decode(msg.Payload)
		require.NoError(t, err)
		assert.Equal(t, "s1", got.Data["session_id"])
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("event not delivered")
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), New(DocumentDeleted, nil)))
}

type failingPublisher struct{ calls int }

func (p *failingPublisher) Publish(ctx context.Context, event Event) error {
	p.calls++
	return errors.New("down")
}

func (p *failingPublisher) Close() {}

func TestFanoutTriesEveryPublisher(t *testing.T) {
	first, second := &failingPublisher{}, &failingPublisher{}
	pub := Fanout(first, NopPublisher{}, second)

	err := pub.Publish(context.Background(), New(DocumentDeleted, nil))
	assert.Error(t, err)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)

	assert.NoError(t, Fanout().Publish(context.Background(), New(DocumentDeleted, nil)))
}
