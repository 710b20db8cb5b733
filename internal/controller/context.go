package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// userIdFromCtx reads the authenticated user id set by the JWT middleware.
// Routes behind the optional middleware get uuid.Nil for anonymous callers.
func userIdFromCtx(ctx *fiber.Ctx) uuid.UUID {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil
	}
	userId, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return userId
}
