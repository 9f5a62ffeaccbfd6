package auth

import (
	"errors"

	"partstore-backend/internal/config"
	"partstore-backend/internal/eventlog"

	"github.com/gofiber/fiber/v2"
)

// RequireAPIKey guards the data, stock and backup endpoints. The key file
// is re-read per request so a key change takes effect without a restart.
// No key file means the server was never provisioned and protected
// endpoints refuse everything instead of running open.
func RequireAPIKey(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		hash, err := LoadKeyHash(cfg.APIKeyFile)
		if errors.Is(err, ErrNotConfigured) {
			return fiber.NewError(fiber.StatusForbidden, "server api key not configured")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "api key unreadable")
		}

		key := c.Get("X-API-KEY")
		if key == "" || !Verify(hash, key) {
			eventlog.Logf("unauthorized request from %s to %s", c.IP(), c.Path())
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or missing api key")
		}
		return c.Next()
	}
}
