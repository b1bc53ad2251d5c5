package websocket

import (
	"chat-memory-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// Handler upgrades GET /apps/:app_id/users/:user_id/events to a websocket stream.
func (h *Hub) Handler() fiber.Handler {
	upgrade := websocket.New(func(conn *websocket.Conn) {
		tenant, _ := conn.Locals("tenant").(entity.Tenant)
		h.serve(conn, tenant)
	})

	return func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		tenant := entity.NewTenant(ctx.Params("app_id"), ctx.Params("user_id"))
		if tenant.Validate() != nil {
			return fiber.NewError(fiber.StatusBadRequest, entity.ErrInvalidTenant.Error())
		}
		ctx.Locals("tenant", tenant)
		return upgrade(ctx)
	}
}

func (h *Hub) serve(conn *websocket.Conn, tenant entity.Tenant) {
	sub := newSubscriber(h, conn, tenant)
	if !h.join(sub) {
		conn.Close()
		return
	}

	go sub.forward()
	sub.drain()
}
