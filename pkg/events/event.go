package events

import (
	"context"
	"encoding/json"
	"time"
)

// Lifecycle events emitted after a write commits.
const (
	SessionCreated     = "SESSION_CREATED"
	SessionDeactivated = "SESSION_DEACTIVATED"
	CollectionCreated  = "COLLECTION_CREATED"
	CollectionDeleted  = "COLLECTION_DELETED"
	DocumentUpserted   = "DOCUMENT_UPSERTED"
	DocumentDeleted    = "DOCUMENT_DELETED"
)

// SubjectPrefix namespaces every topic, e.g. memory.SESSION_CREATED.
const SubjectPrefix = "memory."

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SESSION_CREATED").
	EventType() string

	// Payload returns the data associated with the event. It carries ids only,
	// never message or document content.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now().UTC()}
}

func Subject(e Event) string {
	return SubjectPrefix + e.EventType()
}

// Publisher delivers events to a bus. Publish failures never undo the write
// that produced the event.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close()
}

type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error { return nil }
func (NopPublisher) Close()                                         {}

type envelope struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data"`
}

// Encode is the wire format shared by every transport.
func Encode(e Event) ([]byte, error) {
	return json.Marshal(envelope{Type: e.EventType(), OccurredAt: e.Timestamp(), Data: e.Payload()})
}

func Decode(raw []byte) (BaseEvent, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return BaseEvent{}, err
	}
	return BaseEvent{Type: env.Type, Data: env.Data, OccurredAt: env.OccurredAt}, nil
}
