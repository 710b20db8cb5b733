package controller

import (
	"context"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/apperror"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/service"
	internalWS "ai-chat-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	SaveDocument(ctx *fiber.Ctx) error
	GetDocumentVersions(ctx *fiber.Ctx) error
	GetLatestDocument(ctx *fiber.Ctx) error
	DeleteDocumentVersions(ctx *fiber.Ctx) error
	SaveSuggestions(ctx *fiber.Ctx) error
	GetSuggestions(ctx *fiber.Ctx) error
	StreamUpdate(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
	updaterService  service.IDocumentUpdaterService
	logger          logger.ILogger
}

func NewDocumentController(
	documentService service.IDocumentService,
	updaterService service.IDocumentUpdaterService,
	log logger.ILogger,
) IDocumentController {
	return &documentController{
		documentService: documentService,
		updaterService:  updaterService,
		logger:          log,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document")

	// The update stream works without a session; it just skips persistence.
	h.Get("/ws", c.StreamUpdate)

	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.SaveDocument)
	h.Get("/:id", c.GetDocumentVersions)
	h.Get("/:id/latest", c.GetLatestDocument)
	h.Delete("/:id/versions", c.DeleteDocumentVersions)
	h.Post("/:id/suggestions", c.SaveSuggestions)
	h.Get("/:id/suggestions", c.GetSuggestions)
}

func (c *documentController) SaveDocument(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	var req dto.SaveDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.SaveDocument(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save document", res))
}

func (c *documentController) GetDocumentVersions(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid document id")
	}

	res, err := c.documentService.GetDocumentVersions(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get document versions", res))
}

func (c *documentController) GetLatestDocument(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid document id")
	}

	res, err := c.documentService.GetLatestDocument(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get document", res))
}

func (c *documentController) DeleteDocumentVersions(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid document id")
	}

	after, err := time.Parse(time.RFC3339, ctx.Query("after"))
	if err != nil {
		return apperror.Validation("invalid or missing 'after' timestamp")
	}

	req := dto.DeleteDocumentVersionsRequest{Id: id, Timestamp: after}

	deleted, err := c.documentService.DeleteDocumentVersionsAfter(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete document versions", fiber.Map{"deleted": deleted}))
}

func (c *documentController) SaveSuggestions(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	documentId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid document id")
	}

	var req dto.SaveSuggestionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.DocumentId = documentId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	count, err := c.documentService.SaveSuggestions(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save suggestions", fiber.Map{"saved": count}))
}

func (c *documentController) GetSuggestions(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	documentId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid document id")
	}

	res, err := c.documentService.GetSuggestions(ctx.Context(), userId, documentId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get suggestions", res))
}

// StreamUpdate upgrades to a websocket, reads one update request frame, and
// streams the rewrite back as clear/delta/finish events followed by a result
// frame. A token in the "token" query parameter attributes the update; without
// one the rewrite still streams but is not persisted.
func (c *documentController) StreamUpdate(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	userId := uuid.Nil
	if token := ctx.Query("token"); token != "" {
		if idStr, ok := serverutils.ParseUserToken(token); ok {
			if parsed, err := uuid.Parse(idStr); err == nil {
				userId = parsed
			}
		}
	}

	return websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()

		var req dto.UpdateDocumentRequest
		if err := conn.ReadJSON(&req); err != nil {
			c.logger.Warn("DocumentController", "Malformed update request frame", map[string]interface{}{"error": err.Error()})
			return
		}
		if err := serverutils.ValidateRequest(req); err != nil {
			conn.WriteJSON(fiber.Map{"type": "error", "message": err.Error()})
			return
		}

		writer := internalWS.NewStreamWriter(conn)
		res, err := c.updaterService.UpdateDocument(context.Background(), userId, &req, writer)
		if err != nil {
			c.logger.Warn("DocumentController", "Document update failed", map[string]interface{}{
				"document_id": req.Id,
				"error":       err.Error(),
			})
			conn.WriteJSON(fiber.Map{"type": "error", "message": err.Error()})
			return
		}

		conn.WriteJSON(fiber.Map{"type": "result", "data": res})
	})(ctx)
}
