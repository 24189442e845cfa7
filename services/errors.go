package services

import "errors"

// Error taxonomy shared by all core operations. Callers match with errors.Is;
// everything else is treated as an opaque storage failure.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid appointment transition")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrConflict          = errors.New("concurrent update conflict")
	ErrStorage           = errors.New("storage failure")
)
