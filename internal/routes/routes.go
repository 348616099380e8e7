package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/config"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	moderationHandler *handlers.ModerationHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	adminHandler *handlers.AdminHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	v1 := api.Group("/v1")

	// Moderation submissions carry classifier cost: 20 req/min per IP (stricter)
	moderate := v1.Group("/moderate")
	moderate.Use(limiter.New(limiter.Config{
		Max:               20,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	moderate.Post("/text", moderationHandler.ModerateText)
	moderate.Post("/image", moderationHandler.ModerateImage)

	v1.Get("/analytics/summary", analyticsHandler.UserSummary)

	// Admin audit trail (token required)
	admin := v1.Group("/admin", middleware.AdminRequired(cfg))
	admin.Get("/attempts", adminHandler.ListAttempts)
}
