package types

import "errors"

// Sentinel errors shared across the API layer. Repositories and services
// wrap these with %w so handlers can map them to HTTP statuses with errors.Is.
var (
	ErrNotFound         = errors.New("requested item not found")
	ErrValidation       = errors.New("validation failed")
	ErrStoreUnavailable = errors.New("document store unavailable")
)
