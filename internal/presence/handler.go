package presence

import (
	"time"

	"partstore-backend/internal/models"
	"partstore-backend/internal/revision"

	"github.com/gofiber/fiber/v2"
)

// GET /ping — public heartbeat. Feeds the presence tracker when the
// client identifies itself via X-CLIENT-ID.
func PingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		Touch(c.Get("X-CLIENT-ID"))
		return c.JSON(fiber.Map{
			"ok":          true,
			"server_time": time.Now().UTC().Format(models.TimeLayout),
			"last_update": revision.Current(),
		})
	}
}

// GET /clients
func ListClientsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"clients": Snapshot()})
	}
}
