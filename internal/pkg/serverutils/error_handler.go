package serverutils

import (
	"errors"

	"ai-chat-be/internal/pkg/apperror"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/dberr"

	"github.com/gofiber/fiber/v2"
)

func statusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperror.KindForbidden:
		return fiber.StatusForbidden
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindUpstreamModel:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// NewErrorHandler builds the Fiber error handler. Classified errors map to
// their status; anything else is a 500 with the detail kept out of the body.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			status := statusForKind(appErr.Kind)
			if status >= fiber.StatusInternalServerError {
				log.Error("HTTP", "Request failed", map[string]interface{}{
					"path":  ctx.Path(),
					"kind":  string(appErr.Kind),
					"error": appErr.Error(),
				})
				return ctx.Status(status).JSON(fiber.Map{
					"success": false,
					"code":    status,
					"message": "An error occurred while processing your request",
				})
			}
			return ctx.Status(status).JSON(fiber.Map{
				"success": false,
				"code":    status,
				"message": appErr.Message,
			})
		}

		// Repository errors that bypass service classification still carry a
		// kind from the translator.
		var dbErr *dberr.DatabaseError
		if errors.As(err, &dbErr) {
			status := fiber.StatusInternalServerError
			switch dbErr.Kind {
			case dberr.KindConflict, dberr.KindForeignKey:
				status = fiber.StatusConflict
			case dberr.KindNotFound:
				status = fiber.StatusNotFound
			case dberr.KindValidation:
				status = fiber.StatusBadRequest
			}
			if status >= fiber.StatusInternalServerError {
				log.Error("HTTP", "Database failure", map[string]interface{}{
					"path":      ctx.Path(),
					"operation": dbErr.Operation,
					"error":     dbErr.Error(),
				})
				return ctx.Status(status).JSON(fiber.Map{
					"success": false,
					"code":    status,
					"message": "An error occurred while processing your request",
				})
			}
			return ctx.Status(status).JSON(fiber.Map{
				"success": false,
				"code":    status,
				"message": dbErr.Message,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"code":    fiberErr.Code,
				"message": fiberErr.Message,
			})
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    fiber.StatusInternalServerError,
			"message": "An error occurred while processing your request",
		})
	}
}
