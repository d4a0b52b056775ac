package credit

import (
	"time"

	"github.com/google/uuid"
)

// TxType defines the closed set of ledger transaction types.
type TxType string

const (
	TxTypeUnlockEmail TxType = "unlock_email"
	TxTypeUnlockPhone TxType = "unlock_phone"
	TxTypePurchase    TxType = "purchase"
	TxTypeRefund      TxType = "refund"
	TxTypeBonus       TxType = "bonus"
	TxTypeAdjustment  TxType = "adjustment"
)

// IsDebit reports whether the type represents a paid unlock.
func (t TxType) IsDebit() bool {
	return t == TxTypeUnlockEmail || t == TxTypeUnlockPhone
}

// Valid reports whether the type belongs to the closed set.
func (t TxType) Valid() bool {
	switch t {
	case TxTypeUnlockEmail, TxTypeUnlockPhone, TxTypePurchase, TxTypeRefund, TxTypeBonus, TxTypeAdjustment:
		return true
	}
	return false
}

// Transaction is an immutable ledger row. Amount is signed: unlocks are
// negative, purchases and bonuses positive, refunds and adjustments either.
// The user's balance is the sum of their rows, never a stored counter.
type Transaction struct {
	ID              uuid.UUID `db:"id" json:"id"`
	UserID          uuid.UUID `db:"user_id" json:"user_id"`
	Type            TxType    `db:"type" json:"type"`
	Amount          int       `db:"amount" json:"amount"`
	RelatedEntityID *string   `db:"related_entity_id" json:"related_entity_id,omitempty"`
	Description     string    `db:"description" json:"description,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// DebitResult reports a committed debit.
type DebitResult struct {
	Transaction     *Transaction
	PreviousBalance int
	NewBalance      int
}

// AdditionResult reports a committed credit addition.
type AdditionResult struct {
	Transaction     *Transaction
	PreviousBalance int
	NewBalance      int
}

// Pagination controls simple list pagination.
type Pagination struct {
	Limit  int
	Offset int
}

const (
	// DefaultListLimit is applied when the caller does not bound history reads.
	DefaultListLimit = 50
	// MaxListLimit caps history reads to prevent unbounded scans.
	MaxListLimit = 100
)
