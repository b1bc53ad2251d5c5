package serverutils

import (
	"context"

	"chat-memory-be/internal/repository/contract"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{Success: true, Code: fiber.StatusOK, Message: message, Data: data}
}

func ErrorResponse(code int, message string) BaseResponse[any] {
	return BaseResponse[any]{Success: false, Code: code, Message: message}
}

// Page is one window of a listing. Page numbers start at 1.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Pages int64 `json:"pages"`
}

// PageParams reads ?page= and ?size=, falling back to defaults for bad values.
func PageParams(ctx *fiber.Ctx) (page, size int) {
	page = ctx.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	size = ctx.QueryInt("size", DefaultPageSize)
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}

// Paginate counts the sequence and reads one page of it, converting each item.
func Paginate[E any, R any](ctx context.Context, seq contract.Sequence[E], page, size int, convert func(*E) R) (Page[R], error) {
	total, err := seq.Count(ctx)
	if err != nil {
		return Page[R]{}, err
	}
	rows, err := seq.Page(ctx, (page-1)*size, size)
	if err != nil {
		return Page[R]{}, err
	}

	items := make([]R, 0, len(rows))
	for _, row := range rows {
		items = append(items, convert(row))
	}
	pages := (total + int64(size) - 1) / int64(size)
	return Page[R]{Items: items, Total: total, Page: page, Size: size, Pages: pages}, nil
}
