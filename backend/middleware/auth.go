package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vamsidulam/aiprofessor-hub/backend/config"
	"github.com/vamsidulam/aiprofessor-hub/backend/utils"
)

const ViewerIDKey = "viewer_id"

// AuthMiddleware requires a valid session token. With no JWT secret
// configured every request passes.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.JWTSecret == "" {
			return c.Next()
		}
		viewerID, err := utils.ExtractViewerIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, err.Error())
		}
		c.Locals(ViewerIDKey, viewerID)
		return c.Next()
	}
}
