package handlers

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler maps typed application errors onto the wire shape
// {error_kind, message, details}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if appErr, ok := apperr.As(err); ok {
		return c.Status(apperr.StatusCode(appErr.Kind)).JSON(dto.ErrorResponse{
			ErrorKind: string(appErr.Kind),
			Message:   appErr.Message,
			Details:   appErr.Details,
		})
	}

	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		ErrorKind: "INTERNAL_ERROR",
		Message:   message,
	})
}
