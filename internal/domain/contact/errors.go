package contact

import "errors"

var (
	// ErrInvalidRequest is returned for a bad field type or missing contact id,
	// before any store access
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRevealFailed is returned when the reveal provider cannot produce a
	// value; any debit taken for the attempt has been rolled back
	ErrRevealFailed = errors.New("reveal provider failed")
)
