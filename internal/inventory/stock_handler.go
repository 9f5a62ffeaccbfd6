package inventory

import (
	"errors"

	"partstore-backend/internal/database"
	"partstore-backend/internal/eventlog"
	"partstore-backend/internal/revision"
	"partstore-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type StockRequest struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// stockError translates storage failures for the stock endpoints, where
// an unknown part is a 400 like insufficient stock: the caller must
// change the request, retrying won't help.
func stockError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusBadRequest, "part not found")
	case errors.Is(err, store.ErrInsufficientStock):
		return fiber.NewError(fiber.StatusBadRequest, "insufficient stock")
	case errors.Is(err, database.ErrBusy):
		return fiber.NewError(fiber.StatusServiceUnavailable, "store is busy, try again")
	default:
		eventlog.Logf("storage error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "storage error")
	}
}

func parseStockRequest(c *fiber.Ctx) (StockRequest, error) {
	var body StockRequest
	if err := c.BodyParser(&body); err != nil {
		return body, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if body.ID == "" {
		return body, fiber.NewError(fiber.StatusBadRequest, "id is required")
	}
	if body.Quantity <= 0 {
		return body, fiber.NewError(fiber.StatusBadRequest, "quantity must be a positive integer")
	}
	return body, nil
}

// POST /sell
func SellHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := parseStockRequest(c)
		if err != nil {
			return err
		}
		part, err := store.Sell(body.ID, body.Quantity)
		if err != nil {
			eventlog.Logf("sale rejected %s quantity=%d: %v", body.ID, body.Quantity, err)
			return stockError(err)
		}
		// the sale is committed at this point; bump exactly once per mutation
		revision.Bump()
		eventlog.Logf("sale %s quantity=%d", body.ID, body.Quantity)
		return c.JSON(fiber.Map{"ok": true, "new_quantity": part.Quantity, "item": part})
	}
}

// POST /return
func ReturnHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := parseStockRequest(c)
		if err != nil {
			return err
		}
		part, err := store.Return(body.ID, body.Quantity)
		if err != nil {
			eventlog.Logf("return rejected %s quantity=%d: %v", body.ID, body.Quantity, err)
			return stockError(err)
		}
		// the return is committed at this point; bump exactly once per mutation
		revision.Bump()
		eventlog.Logf("return %s quantity=%d", body.ID, body.Quantity)
		return c.JSON(fiber.Map{"ok": true, "new_quantity": part.Quantity, "item": part})
	}
}
