package handlers

import (
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/dto"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminHandler exposes the notification audit trail to operators.
type AdminHandler struct {
	attempts *store.AttemptStore
}

func NewAdminHandler(attempts *store.AttemptStore) *AdminHandler {
	return &AdminHandler{attempts: attempts}
}

func (h *AdminHandler) ListAttempts(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Query("request_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorKind: "VALIDATION_ERROR", Message: "Invalid request_id",
		})
	}

	attempts, err := h.attempts.ListByRequest(requestID)
	if err != nil {
		return apperr.Persistence("list attempts", err)
	}

	return c.JSON(fiber.Map{
		"request_id": requestID,
		"attempts":   attempts,
		"total":      len(attempts),
	})
}
