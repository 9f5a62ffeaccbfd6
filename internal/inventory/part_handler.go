package inventory

import (
	"errors"
	"time"

	"partstore-backend/internal/database"
	"partstore-backend/internal/eventlog"
	"partstore-backend/internal/models"
	"partstore-backend/internal/revision"
	"partstore-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type UpsertPartRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	PriceUSD    float64 `json:"price_usd"`
	PriceBS     float64 `json:"price_bs"`
}

func nowStamp() string {
	return time.Now().UTC().Format(models.TimeLayout)
}

// storeError translates storage-layer failures for record endpoints.
// Every failure path maps to a structured status; nothing propagates as a
// crash.
func storeError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "part not found")
	case errors.Is(err, store.ErrMissingID):
		return fiber.NewError(fiber.StatusBadRequest, "id is required")
	case errors.Is(err, database.ErrBusy):
		return fiber.NewError(fiber.StatusServiceUnavailable, "store is busy, try again")
	default:
		eventlog.Logf("storage error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "storage error")
	}
}

// GET /items
func ListPartsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		parts, err := store.ListActive()
		if err != nil {
			return storeError(err)
		}
		return c.JSON(fiber.Map{
			"items":       parts,
			"server_time": nowStamp(),
			"last_update": revision.Current(),
		})
	}
}

// POST /items — upsert, id required in the body.
func UpsertPartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpsertPartRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		return upsertPart(c, body)
	}
}

// GET /items/:id
func GetPartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		part, err := store.Get(c.Params("id"))
		if err != nil {
			return storeError(err)
		}
		return c.JSON(part)
	}
}

// PUT /items/:id — always upserts; the path id wins over any body id.
func UpdatePartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpsertPartRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		body.ID = c.Params("id")
		return upsertPart(c, body)
	}
}

func upsertPart(c *fiber.Ctx, body UpsertPartRequest) error {
	part, err := store.Upsert(models.Part{
		ID:          body.ID,
		Name:        body.Name,
		Description: body.Description,
		Quantity:    body.Quantity,
		PriceUSD:    body.PriceUSD,
		PriceBS:     body.PriceBS,
	})
	if err != nil {
		return storeError(err)
	}
	revision.Bump()
	eventlog.Logf("upsert part %s name=%q", part.ID, part.Name)
	return c.JSON(fiber.Map{"ok": true, "item": part})
}

// DELETE /items/:id — soft delete; deleting twice is a no-op success.
func DeletePartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := store.SoftDelete(id); err != nil {
			return storeError(err)
		}
		revision.Bump()
		eventlog.Logf("delete part %s", id)
		return c.JSON(fiber.Map{"ok": true})
	}
}
