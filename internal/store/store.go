package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"partstore-backend/internal/database"
	"partstore-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func nowStamp() string {
	return time.Now().UTC().Format(models.TimeLayout)
}

// ListActive returns every part that is not soft deleted, ordered by id.
func ListActive() ([]models.Part, error) {
	if err := database.Acquire(); err != nil {
		return nil, err
	}
	defer database.Release()

	var parts []models.Part
	if err := database.DB.Where("deleted = ?", false).Order("id asc").Find(&parts).Error; err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	return parts, nil
}

// Get returns the active part for id, or ErrNotFound.
func Get(id string) (models.Part, error) {
	if err := database.Acquire(); err != nil {
		return models.Part{}, err
	}
	defer database.Release()
	return getLocked(id)
}

func getLocked(id string) (models.Part, error) {
	var part models.Part
	err := database.DB.Where("id = ? AND deleted = ?", id, false).First(&part).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return part, ErrNotFound
	}
	if err != nil {
		return part, fmt.Errorf("get part: %w", err)
	}
	return part, nil
}

// Upsert inserts a new part or overwrites every mutable field of an
// existing one, refreshing last_update. Upserting a soft-deleted id
// resurrects it; ledger history for the id carries over untouched.
// Quantity and prices are clamped so a row can never be written negative.
func Upsert(part models.Part) (models.Part, error) {
	part.ID = strings.TrimSpace(part.ID)
	if part.ID == "" {
		return part, ErrMissingID
	}
	if part.Quantity < 0 {
		part.Quantity = 0
	}
	if part.PriceUSD < 0 {
		part.PriceUSD = 0
	}
	if part.PriceBS < 0 {
		part.PriceBS = 0
	}
	part.Deleted = false
	part.LastUpdate = nowStamp()

	if err := database.Acquire(); err != nil {
		return part, err
	}
	defer database.Release()

	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&part).Error
	if err != nil {
		return part, fmt.Errorf("upsert part: %w", err)
	}
	return part, nil
}

// SoftDelete hides a part from reads and stock adjustments while keeping
// its row. Deleting an absent or already-deleted id is a no-op success.
func SoftDelete(id string) error {
	if err := database.Acquire(); err != nil {
		return err
	}
	defer database.Release()

	err := database.DB.Model(&models.Part{}).Where("id = ?", id).
		Updates(map[string]any{"deleted": true, "last_update": nowStamp()}).Error
	if err != nil {
		return fmt.Errorf("delete part: %w", err)
	}
	return nil
}

// Sell decrements stock and appends a sale ledger entry. The whole
// read-modify-write runs under the store lock, so two concurrent sales
// against the same part can never interleave and oversell. Returns the
// updated part, read under the same lock hold, so callers never need a
// second fetch after the sale committed.
func Sell(id string, quantity int) (models.Part, error) {
	return adjust(models.LedgerSale, id, quantity)
}

// Return adds returned stock back and appends a return ledger entry.
// Returns the updated part.
func Return(id string, quantity int) (models.Part, error) {
	return adjust(models.LedgerReturn, id, quantity)
}

func adjust(kind models.LedgerKind, id string, quantity int) (models.Part, error) {
	if err := database.Acquire(); err != nil {
		return models.Part{}, err
	}
	defer database.Release()

	part, err := getLocked(id)
	if err != nil {
		return models.Part{}, err
	}

	newQuantity := part.Quantity
	switch kind {
	case models.LedgerSale:
		if quantity > part.Quantity {
			return models.Part{}, ErrInsufficientStock
		}
		newQuantity -= quantity
	case models.LedgerReturn:
		newQuantity += quantity
	}

	stamp := nowStamp()
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Part{}).Where("id = ?", id).
			Updates(map[string]any{"quantity": newQuantity, "last_update": stamp}).Error; err != nil {
			return err
		}
		entry := models.LedgerEntry{Kind: kind, PartID: id, Quantity: quantity, Date: stamp}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return models.Part{}, fmt.Errorf("adjust stock: %w", err)
	}
	part.Quantity = newQuantity
	part.LastUpdate = stamp
	return part, nil
}
