package revision

import (
	"github.com/gofiber/fiber/v2"
)

// GET /last_update — cheap staleness check, public.
func LastUpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"last_update": Current()})
	}
}
