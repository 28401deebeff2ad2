package repository

import "errors"

// Storage errors translated from the driver so services stay GORM-agnostic.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)
