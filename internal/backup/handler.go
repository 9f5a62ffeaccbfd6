package backup

import (
	"errors"

	"partstore-backend/internal/database"
	"partstore-backend/internal/eventlog"
	"partstore-backend/internal/revision"

	"github.com/gofiber/fiber/v2"
)

// POST /backup
func CreateBackupHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, err := Create("backup")
		if errors.Is(err, database.ErrBusy) {
			return fiber.NewError(fiber.StatusServiceUnavailable, "store is busy, try again")
		}
		if err != nil {
			eventlog.Logf("backup failed: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "backup failed")
		}
		return c.JSON(fiber.Map{"ok": true, "backup": name})
	}
}

// GET /list_backups
func ListBackupsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		names, err := List()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "cannot list backups")
		}
		return c.JSON(fiber.Map{"backups": names})
	}
}

// GET /download_backup/:name — snapshots are immutable once written, so
// downloads need no store lock.
func DownloadBackupHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := Path(c.Params("name"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "backup not found")
		}
		return c.Download(p)
	}
}

// POST /restore/:name
func RestoreBackupHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		pre, err := Restore(c.Params("name"))
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, "backup not found")
		case errors.Is(err, database.ErrBusy):
			return fiber.NewError(fiber.StatusServiceUnavailable, "store is busy, try again")
		case err != nil:
			eventlog.Logf("restore failed: %v", err)
			// the message tells the operator whether the failure left the
			// live store partial and which pre-restore copy to fall back to
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		revision.Bump()
		return c.JSON(fiber.Map{"ok": true, "pre_restore": pre})
	}
}
