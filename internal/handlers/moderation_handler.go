package handlers

import (
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/dto"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ModerationHandler struct {
	moderationService *services.ModerationService
}

func NewModerationHandler(moderationService *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

func (h *ModerationHandler) ModerateText(c *fiber.Ctx) error {
	var req dto.ModerateTextRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorKind: "VALIDATION_ERROR", Message: "Invalid request body",
		})
	}

	resp, err := h.moderationService.ModerateText(c.UserContext(), req.Email, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *ModerationHandler) ModerateImage(c *fiber.Ctx) error {
	var req dto.ModerateImageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorKind: "VALIDATION_ERROR", Message: "Invalid request body",
		})
	}

	resp, err := h.moderationService.ModerateImage(c.UserContext(), req.Email, req.ImageURL)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
