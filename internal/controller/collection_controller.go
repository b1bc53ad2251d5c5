package controller

import (
	"chat-memory-be/internal/dto"
	"chat-memory-be/internal/mapper"
	"chat-memory-be/internal/pkg/serverutils"
	"chat-memory-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICollectionController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	ShowById(ctx *fiber.Ctx) error
	ShowByName(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	GetDocuments(ctx *fiber.Ctx) error
	ShowDocument(ctx *fiber.Ctx) error
	Query(ctx *fiber.Ctx) error
	CreateDocument(ctx *fiber.Ctx) error
	UpdateDocument(ctx *fiber.Ctx) error
	DeleteDocument(ctx *fiber.Ctx) error
}

type collectionController struct {
	collections service.ICollectionService
	documents   service.IDocumentService
}

func NewCollectionController(collections service.ICollectionService, documents service.IDocumentService) ICollectionController {
	return &collectionController{collections: collections, documents: documents}
}

func (c *collectionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/collections")
	h.Get("/all", c.GetAll)
	h.Get("/id/:collection_id", c.ShowById)
	h.Get("/name/:name", c.ShowByName)
	h.Post("", c.Create)
	h.Put("/:collection_id", c.Update)
	h.Delete("/:collection_id", c.Delete)

	h.Get("/:collection_id/documents", c.GetDocuments)
	h.Get("/:collection_id/documents/:document_id", c.ShowDocument)
	h.Get("/:collection_id/query", c.Query)
	h.Post("/:collection_id/documents", c.CreateDocument)
	h.Put("/:collection_id/documents/:document_id", c.UpdateDocument)
	h.Delete("/:collection_id/documents/:document_id", c.DeleteDocument)
}

func (c *collectionController) GetAll(ctx *fiber.Ctx) error {
	seq, err := c.collections.List(ctx.UserContext(), tenantOf(ctx))
	if err != nil {
		return err
	}

	page, size := serverutils.PageParams(ctx)
	res, err := serverutils.Paginate(ctx.UserContext(), seq, page, size, mapper.CollectionToResponse)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all collections", res))
}

func (c *collectionController) ShowById(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "collection_id")
	if err != nil {
		return err
	}

	res, err := c.collections.GetById(ctx.UserContext(), tenantOf(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show collection", mapper.CollectionToResponse(res)))
}

func (c *collectionController) ShowByName(ctx *fiber.Ctx) error {
	res, err := c.collections.GetByName(ctx.UserContext(), tenantOf(ctx), ctx.Params("name"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show collection", mapper.CollectionToResponse(res)))
}

func (c *collectionController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateCollectionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.collections.Create(ctx.UserContext(), tenantOf(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create collection", mapper.CollectionToResponse(res)))
}

func (c *collectionController) Update(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "collection_id")
	if err != nil {
		return err
	}
	var req dto.UpdateCollectionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.collections.Update(ctx.UserContext(), tenantOf(ctx), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update collection", mapper.CollectionToResponse(res)))
}

func (c *collectionController) Delete(ctx *fiber.Ctx) error {
	id, err := uuidParam(ctx, "collection_id")
	if err != nil {
		return err
	}

	deleted, err := c.collections.Delete(ctx.UserContext(), tenantOf(ctx), id)
	if err != nil {
		return err
	}
	if !deleted {
		return fiber.NewError(fiber.StatusNotFound, "collection not found")
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Collection deleted successfully", nil))
}

func (c *collectionController) GetDocuments(ctx *fiber.Ctx) error {
	collectionId, err := uuidParam(ctx, "collection_id")
	if err != nil {
		return err
	}

	seq, err := c.documents.List(ctx.UserContext(), tenantOf(ctx), collectionId)
	if err != nil {
		return err
	}
	page, size := serverutils.PageParams(ctx)
	res, err := serverutils.Paginate(ctx.UserContext(), seq, page, size, mapper.DocumentToResponse)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all documents", res))
}

func (c *collectionController) ShowDocument(ctx *fiber.Ctx) error {
	collectionId, documentId, err := documentParams(ctx)
	if err != nil {
		return err
	}

	res, err := c.documents.Get(ctx.UserContext(), tenantOf(ctx), collectionId, documentId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show document", mapper.DocumentToResponse(res)))
}

// Query is not paginated; top_k bounds the result instead.
func (c *collectionController) Query(ctx *fiber.Ctx) error {
	collectionId, err := uuidParam(ctx, "collection_id")
	if err != nil {
		return err
	}
	req := dto.QueryDocumentsRequest{
		Query: ctx.Query("query"),
		TopK:  ctx.QueryInt("top_k", 0),
	}

	results, err := c.documents.Query(ctx.UserContext(), tenantOf(ctx), collectionId, &req)
	if err != nil {
		return err
	}
	res := make([]*dto.DocumentResponse, 0, len(results))
	for _, r := range results {
		res = append(res, mapper.ScoredDocumentToResponse(r))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success query documents", res))
}

func (c *collectionController) CreateDocument(ctx *fiber.Ctx) error {
	collectionId, err := uuidParam(ctx, "collection_id")
	if err != nil {
		return err
	}
	var req dto.CreateDocumentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.documents.Create(ctx.UserContext(), tenantOf(ctx), collectionId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create document", mapper.DocumentToResponse(res)))
}

func (c *collectionController) UpdateDocument(ctx *fiber.Ctx) error {
	collectionId, documentId, err := documentParams(ctx)
	if err != nil {
		return err
	}
	var req dto.UpdateDocumentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.documents.Update(ctx.UserContext(), tenantOf(ctx), collectionId, documentId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update document", mapper.DocumentToResponse(res)))
}

func (c *collectionController) DeleteDocument(ctx *fiber.Ctx) error {
	collectionId, documentId, err := documentParams(ctx)
	if err != nil {
		return err
	}

	deleted, err := c.documents.Delete(ctx.UserContext(), tenantOf(ctx), collectionId, documentId)
	if err != nil {
		return err
	}
	if !deleted {
		return fiber.NewError(fiber.StatusNotFound, "document not found")
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Document deleted successfully", nil))
}

func documentParams(ctx *fiber.Ctx) (collectionId, documentId uuid.UUID, err error) {
	if collectionId, err = uuidParam(ctx, "collection_id"); err != nil {
		return
	}
	documentId, err = uuidParam(ctx, "document_id")
	return
}
