package credit

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientCredits is returned when the balance cannot cover a debit
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrInvalidAmount is returned when the amount does not fit the transaction type
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidTxType is returned for a type outside the closed set
	ErrInvalidTxType = errors.New("invalid transaction type")

	// ErrAlreadyCharged is returned when a debit with the same idempotency key exists
	ErrAlreadyCharged = errors.New("already charged for this entity")

	ErrInternal = errors.New("internal error")
)

// InsufficientCreditsError carries the caller-visible balance and cost so the
// UI can prompt a top-up. errors.Is against ErrInsufficientCredits matches.
type InsufficientCreditsError struct {
	Balance  int
	Required int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: have %d, need %d", e.Balance, e.Required)
}

func (e *InsufficientCreditsError) Unwrap() error {
	return ErrInsufficientCredits
}
