package websocket

import (
	"context"
	"sync"

	"chat-memory-be/internal/entity"
	"chat-memory-be/internal/pkg/logger"
	"chat-memory-be/pkg/events"
)

const hubModule = "HUB"

// Hub fans lifecycle events out to the websocket clients of the owning tenant.
// It is an events.Publisher, so the services feed it like any other bus.
type Hub struct {
	// Registered clients: tenant -> connections (multi-device)
	clients map[entity.Tenant][]*subscriber

	register   chan *subscriber
	unregister chan *subscriber
	done       chan struct{}
	closeOnce  sync.Once

	// Lock for safe map access
	mu sync.RWMutex

	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[entity.Tenant][]*subscriber),
		register:   make(chan *subscriber),
		unregister: make(chan *subscriber),
		done:       make(chan struct{}),
		logger:     log,
	}
}

// Run owns client registration until Close is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.tenant] = append(h.clients[client.tenant], client)
			h.mu.Unlock()
			h.logger.Info(hubModule, "Client registered", map[string]interface{}{"app_id": client.tenant.AppId, "user_id": client.tenant.UserId})

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for tenant, clients := range h.clients {
				for _, c := range clients {
					close(c.send)
				}
				delete(h.clients, tenant)
			}
			h.mu.Unlock()
			return
		}
	}
}

// remove must be called with mu held.
func (h *Hub) remove(client *subscriber) {
	clients := h.clients[client.tenant]
	for i, c := range clients {
		if c == client {
			h.clients[client.tenant] = append(clients[:i], clients[i+1:]...)
			close(client.send)
			break
		}
	}
	if len(h.clients[client.tenant]) == 0 {
		delete(h.clients, client.tenant)
	}
}

// Publish delivers the event to every connection of the tenant named in its payload.
// Slow clients lose the event rather than block the caller.
func (h *Hub) Publish(ctx context.Context, event events.Event) error {
	payload := event.Payload()
	appId, _ := payload["app_id"].(string)
	userId, _ := payload["user_id"].(string)
	tenant := entity.NewTenant(appId, userId)
	if tenant.Validate() != nil {
		return nil
	}

	data, err := events.Encode(event)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients[tenant] {
		select {
		case client.send <- data:
		default:
			h.logger.Warn(hubModule, "Client send buffer full, dropping event", map[string]interface{}{
				"app_id":     appId,
				"user_id":    userId,
				"event_type": event.EventType(),
			})
		}
	}
	return nil
}

// Close stops Run and closes every client's send channel.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Connections reports how many clients the tenant has open.
func (h *Hub) Connections(tenant entity.Tenant) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[tenant])
}

func (h *Hub) join(c *subscriber) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *subscriber) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
