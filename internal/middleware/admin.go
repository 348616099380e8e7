package middleware

import (
	"crypto/subtle"

	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/config"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired guards admin routes with a static token header. With no
// token configured the admin surface is disabled entirely.
func AdminRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.AdminToken == "" {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				ErrorKind: "NOT_FOUND", Message: "Not found",
			})
		}
		token := c.Get("X-Admin-Token")
		if subtle.ConstantTimeCompare([]byte(token), []byte(cfg.AdminToken)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				ErrorKind: "UNAUTHORIZED", Message: "Invalid admin token",
			})
		}
		return c.Next()
	}
}
