package websocket

import (
	"time"

	"chat-memory-be/internal/entity"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256
)

// subscriber is one live connection following a single tenant's events.
// The hub owns send and is the only party that closes it.
type subscriber struct {
	hub    *Hub
	conn   *websocket.Conn
	tenant entity.Tenant
	send   chan []byte
}

func newSubscriber(h *Hub, conn *websocket.Conn, tenant entity.Tenant) *subscriber {
	return &subscriber{hub: h, conn: conn, tenant: tenant, send: make(chan []byte, sendBuffer)}
}

func (s *subscriber) write(messageType int, data []byte) error {
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteMessage(messageType, data)
}

func (s *subscriber) extendDeadline(string) error {
	return s.conn.SetReadDeadline(time.Now().Add(pongWait))
}

// drain reads until the peer goes away. Inbound frames are discarded;
// reading is what keeps pong handling and close detection running.
func (s *subscriber) drain() {
	defer func() {
		s.hub.leave(s)
		s.conn.Close()
	}()
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.extendDeadline("")
	s.conn.SetPongHandler(s.extendDeadline)

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.hub.logger.Warn(hubModule, "Unexpected websocket close", map[string]interface{}{
					"app_id":  s.tenant.AppId,
					"user_id": s.tenant.UserId,
					"error":   err.Error(),
				})
			}
			return
		}
	}
}

// forward writes each queued event as its own text frame and pings while idle.
func (s *subscriber) forward() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			if !ok {
				_ = s.write(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.write(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			if err := s.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
