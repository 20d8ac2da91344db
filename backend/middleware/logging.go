package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/vamsidulam/aiprofessor-hub/backend/utils"
)

// LoggingMiddleware logs one line per request, tagged with the viewer id when
// AuthMiddleware accepted a session token further down the chain.
func LoggingMiddleware(logger *utils.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		kv := []interface{}{
			"ip", c.IP(),
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"latency", time.Since(start),
		}
		if viewerID, ok := c.Locals(ViewerIDKey).(string); ok {
			kv = append(kv, "viewer_id", viewerID)
		}
		if err != nil {
			logger.Warn("request failed", append(kv, "error", err)...)
		} else {
			logger.Info("request", kv...)
		}
		return err
	}
}
