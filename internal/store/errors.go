package store

import "errors"

var (
	ErrNotFound          = errors.New("part not found")
	ErrMissingID         = errors.New("id is required")
	ErrInsufficientStock = errors.New("insufficient stock")
)
