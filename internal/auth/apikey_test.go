package auth

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"partstore-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "api_key.txt")
}

func TestSetKeyStoresOnlyTheHash(t *testing.T) {
	path := keyFile(t)
	require.NoError(t, SetKey(path, "secret-key"))

	hash, err := LoadKeyHash(path)
	require.NoError(t, err)
	assert.NotContains(t, hash, "secret-key")
	assert.True(t, Verify(hash, "secret-key"))
	assert.False(t, Verify(hash, "wrong-key"))
}

func TestSetKeyRejectsEmpty(t *testing.T) {
	assert.Error(t, SetKey(keyFile(t), "   "))
}

func TestLoadKeyHashMissingFile(t *testing.T) {
	_, err := LoadKeyHash(keyFile(t))
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func newGuardedApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Use(RequireAPIKey(cfg))
	app.Get("/guarded", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func TestMiddlewareFailsClosedWhenNotConfigured(t *testing.T) {
	cfg := &config.Config{APIKeyFile: keyFile(t)}
	app := newGuardedApp(cfg)

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestMiddlewareRejectsMissingOrWrongKey(t *testing.T) {
	cfg := &config.Config{APIKeyFile: keyFile(t)}
	require.NoError(t, SetKey(cfg.APIKeyFile, "secret-key"))
	app := newGuardedApp(cfg)

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("X-API-KEY", "wrong-key")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareAcceptsValidKey(t *testing.T) {
	cfg := &config.Config{APIKeyFile: keyFile(t)}
	require.NoError(t, SetKey(cfg.APIKeyFile, "secret-key"))
	app := newGuardedApp(cfg)

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("X-API-KEY", "secret-key")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
