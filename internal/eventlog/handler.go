package eventlog

import (
	"github.com/gofiber/fiber/v2"
)

// GET /events?limit=50
func RecentEventsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 50)
		// Recent treats non-positive as "everything"; the endpoint never does
		if limit <= 0 {
			limit = 50
		}
		return c.JSON(fiber.Map{"events": Recent(limit)})
	}
}
