package handlers

import (
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/dto"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) UserSummary(c *fiber.Ctx) error {
	user := c.Query("user")
	if user == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			ErrorKind: "VALIDATION_ERROR", Message: "user query parameter is required",
		})
	}

	summary, err := h.analyticsService.UserSummary(user)
	if err != nil {
		return err
	}
	return c.JSON(summary)
}
