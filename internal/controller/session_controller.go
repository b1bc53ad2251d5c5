package controller

import (
	"chat-memory-be/internal/dto"
	"chat-memory-be/internal/mapper"
	"chat-memory-be/internal/pkg/serverutils"
	"chat-memory-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	CreateMessage(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	ShowMessage(ctx *fiber.Ctx) error
	CreateMetamessage(ctx *fiber.Ctx) error
	GetMetamessages(ctx *fiber.Ctx) error
	ShowMetamessage(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessions     service.ISessionService
	messages     service.IMessageService
	metamessages service.IMetamessageService
}

func NewSessionController(
	sessions service.ISessionService,
	messages service.IMessageService,
	metamessages service.IMetamessageService,
) ISessionController {
	return &sessionController{sessions: sessions, messages: messages, metamessages: metamessages}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sessions")
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get("/:session_id", c.Show)
	h.Put("/:session_id", c.Update)
	h.Delete("/:session_id", c.Delete)

	h.Post("/:session_id/messages", c.CreateMessage)
	h.Get("/:session_id/messages", c.GetMessages)
	h.Get("/:session_id/messages/:message_id", c.ShowMessage)

	h.Post("/:session_id/metamessages", c.CreateMetamessage)
	h.Get("/:session_id/metamessages", c.GetMetamessages)
	h.Get("/:session_id/metamessages/:metamessage_id", c.ShowMetamessage)
}

func (c *sessionController) GetAll(ctx *fiber.Ctx) error {
	seq, err := c.sessions.List(ctx.UserContext(), tenantOf(ctx), stringQuery(ctx, "location_id"))
	if err != nil {
		return err
	}

	page, size := serverutils.PageParams(ctx)
	res, err := serverutils.Paginate(ctx.UserContext(), seq, page, size, mapper.SessionToResponse)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all sessions", res))
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.sessions.Create(ctx.UserContext(), tenantOf(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create session", mapper.SessionToResponse(res)))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "session_id")
	if err != nil {
		return err
	}

	tenant := tenantOf(ctx)
	res, err := c.sessions.Get(ctx.UserContext(), tenant.AppId, &tenant.UserId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show session", mapper.SessionToResponse(res)))
}

func (c *sessionController) Update(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "session_id")
	if err != nil {
		return err
	}
	var req dto.UpdateSessionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.sessions.Update(ctx.UserContext(), tenantOf(ctx), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update session", mapper.SessionToResponse(res)))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "session_id")
	if err != nil {
		return err
	}

	deleted, err := c.sessions.Delete(ctx.UserContext(), tenantOf(ctx), id)
	if err != nil {
		return err
	}
	if !deleted {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Session deleted successfully", nil))
}

func (c *sessionController) CreateMessage(ctx *fiber.Ctx) error {
	sessionId, err := uuidParam(ctx, "session_id")
	if err != nil {
		return err
	}
	var req dto.CreateMessageRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.messages.Create(ctx.UserContext(), tenantOf(ctx), sessionId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create message", mapper.MessageToResponse(res)))
}

func (c *sessionController) GetMessages(ctx *fiber.Ctx) error {
	sessionId, err := uuidParam(ctx, "session_id")
	if err != nil {
		return err
	}

	seq, err := c.messages.List(ctx.UserContext(), tenantOf(ctx), sessionId)
	if err != nil {
		return err
	}
	page, size := serverutils.PageParams(ctx)
	res, err := serverutils.Paginate(ctx.UserContext(), seq, page, size, mapper.MessageToResponse)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all messages", res))
}

func (c *sessionController) ShowMessage(ctx *fiber.Ctx) error {
	sessionId, err := uuidParam(ctx, "session_id")
	if err != nil {
		return err
	}
	messageId, err := uuidParam(ctx, "message_id")
	if err != nil {
		return err
	}

	res, err := c.messages.Get(ctx.UserContext(), tenantOf(ctx), sessionId, messageId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show message", mapper.MessageToResponse(res)))
}

func (c *sessionController) CreateMetamessage(ctx *fiber.Ctx) error {
	sessionId, err := uuidParam(ctx, "session_id")
	if err != nil {
		return err
	}
	var req dto.CreateMetamessageRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.metamessages.Create(ctx.UserContext(), tenantOf(ctx), sessionId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create metamessage", mapper.MetamessageToResponse(res)))
}

func (c *sessionController) GetMetamessages(ctx *fiber.Ctx) error {
	sessionId, err := uuidParam(ctx, "session_id")
	if err != nil {
		return err
	}
	messageId, err := uuidQuery(ctx, "message_id")
	if err != nil {
		return err
	}
	filter := dto.MetamessageFilter{
		MessageId:       messageId,
		MetamessageType: stringQuery(ctx, "metamessage_type"),
	}

	seq, err := c.metamessages.List(ctx.UserContext(), tenantOf(ctx), sessionId, filter)
	if err != nil {
		return err
	}
	page, size := serverutils.PageParams(ctx)
	res, err := serverutils.Paginate(ctx.UserContext(), seq, page, size, mapper.MetamessageToResponse)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all metamessages", res))
}

// ShowMetamessage takes the parent message from ?message_id=.
func (c *sessionController) ShowMetamessage(ctx *fiber.Ctx) error {
	sessionId, err := uuidParam(ctx, "session_id")
	if err != nil {
		return err
	}
	metamessageId, err := uuidParam(ctx, "metamessage_id")
	if err != nil {
		return err
	}
	messageId, err := uuidQuery(ctx, "message_id")
	if err != nil {
		return err
	}
	if messageId == nil {
		return fiber.NewError(fiber.StatusBadRequest, "message_id is required")
	}

	res, err := c.metamessages.Get(ctx.UserContext(), tenantOf(ctx), sessionId, *messageId, metamessageId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show metamessage", mapper.MetamessageToResponse(res)))
}
