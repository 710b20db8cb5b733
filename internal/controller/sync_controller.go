package controller

import (
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/pkg/serverutils"
	internalWS "ai-chat-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ISyncController exposes the websocket endpoint devices hold open to receive
// cross-device sync pushes.
type ISyncController interface {
	RegisterRoutes(r fiber.Router)
	ServeWs(ctx *fiber.Ctx) error
}

type syncController struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewSyncController(hub *internalWS.Hub, log logger.ILogger) ISyncController {
	return &syncController{
		hub:    hub,
		logger: log,
	}
}

func (c *syncController) RegisterRoutes(r fiber.Router) {
	r.Get("/sync/ws", c.ServeWs)
}

func (c *syncController) ServeWs(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	// Browsers cannot set headers on websocket handshakes, so the token comes
	// as a query parameter, with the header as fallback for tooling.
	tokenStr := ctx.Query("token")
	if tokenStr == "" {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
	}

	userIDStr, ok := serverutils.ParseUserToken(tokenStr)
	if !ok {
		c.logger.Warn("SyncController", "Invalid token in WS handshake", nil)
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid user id in token"})
	}

	return websocket.New(func(conn *websocket.Conn) {
		internalWS.ServeWs(c.hub, conn, userID)
	})(ctx)
}
