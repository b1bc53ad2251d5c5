package serverutils

import (
	"errors"

	"chat-memory-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// StatusOf maps a service error to an HTTP status.
func StatusOf(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	switch apperror.KindOf(err) {
	case apperror.ErrNotFound:
		return fiber.StatusNotFound
	case apperror.ErrAlreadyExists:
		return fiber.StatusConflict
	case apperror.ErrInvalidArgument:
		return fiber.StatusBadRequest
	case apperror.ErrDependencyFailure:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware renders errors returned by later handlers as a BaseResponse.
// Store failures keep their detail out of the body.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := StatusOf(err)
		message := err.Error()
		if status == fiber.StatusInternalServerError {
			message = "internal server error"
		}
		return ctx.Status(status).JSON(ErrorResponse(status, message))
	}
}
