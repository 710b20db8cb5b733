package controller

import (
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/apperror"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	History(ctx *fiber.Ctx) error
	SaveChat(ctx *fiber.Ctx) error
	GetChat(ctx *fiber.Ctx) error
	DeleteChat(ctx *fiber.Ctx) error
	SaveMessages(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	DeleteTrailingMessages(ctx *fiber.Ctx) error
	VoteMessage(ctx *fiber.Ctx) error
	GetVotes(ctx *fiber.Ctx) error
	UpdateVisibility(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	// History requires a session; an anonymous request fails before the
	// handler runs.
	r.Get("/history", serverutils.JwtMiddleware, c.History)

	h := r.Group("/chat")

	// Public chats are readable without a session.
	h.Get("/:id", serverutils.OptionalJwtMiddleware, c.GetChat)
	h.Get("/:id/messages", serverutils.OptionalJwtMiddleware, c.GetMessages)
	h.Get("/:id/votes", serverutils.OptionalJwtMiddleware, c.GetVotes)

	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.SaveChat)
	h.Delete("/:id", c.DeleteChat)
	h.Post("/:id/messages", c.SaveMessages)
	h.Delete("/:id/messages", c.DeleteTrailingMessages)
	h.Post("/:id/vote", c.VoteMessage)
	h.Patch("/:id/visibility", c.UpdateVisibility)
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	res, err := c.chatService.History(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

func (c *chatController) SaveChat(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	var req dto.SaveChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SaveChat(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save chat", res))
}

func (c *chatController) GetChat(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid chat id")
	}

	res, err := c.chatService.GetChat(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat", res))
}

func (c *chatController) DeleteChat(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid chat id")
	}

	if err := c.chatService.DeleteChat(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete chat", nil))
}

func (c *chatController) SaveMessages(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	chatId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid chat id")
	}

	var req dto.SaveMessagesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.ChatId = chatId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	count, err := c.chatService.SaveMessages(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save messages", fiber.Map{"saved": count}))
}

func (c *chatController) GetMessages(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	chatId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid chat id")
	}

	res, err := c.chatService.GetMessages(ctx.Context(), userId, chatId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

// DeleteTrailingMessages removes everything in the chat after the timestamp
// in the "after" query parameter (RFC3339).
func (c *chatController) DeleteTrailingMessages(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	chatId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid chat id")
	}

	after, err := time.Parse(time.RFC3339, ctx.Query("after"))
	if err != nil {
		return apperror.Validation("invalid or missing 'after' timestamp")
	}

	req := dto.DeleteTrailingMessagesRequest{ChatId: chatId, Timestamp: after}

	deleted, err := c.chatService.DeleteTrailingMessages(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete trailing messages", fiber.Map{"deleted": deleted}))
}

func (c *chatController) VoteMessage(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	chatId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid chat id")
	}

	var req dto.VoteMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.ChatId = chatId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.VoteMessage(ctx.Context(), userId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success vote message", nil))
}

func (c *chatController) GetVotes(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	chatId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid chat id")
	}

	res, err := c.chatService.GetVotes(ctx.Context(), userId, chatId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get votes", res))
}

func (c *chatController) UpdateVisibility(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	chatId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("invalid chat id")
	}

	var req dto.UpdateVisibilityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.ChatId = chatId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.UpdateVisibility(ctx.Context(), userId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update visibility", nil))
}
