package contact

import (
	"github.com/google/uuid"

	"github.com/leadnest/leadnest-api/internal/domain/credit"
)

// FieldType identifies which contact field an unlock reveals.
type FieldType string

const (
	FieldEmail FieldType = "email"
	FieldPhone FieldType = "phone"
)

// Fixed tariff per field type.
const (
	CostUnlockEmail = 2
	CostUnlockPhone = 5
)

// Valid reports whether the field type is unlockable.
func (f FieldType) Valid() bool {
	return f == FieldEmail || f == FieldPhone
}

// Cost returns the credit cost of revealing the field.
func (f FieldType) Cost() int {
	if f == FieldPhone {
		return CostUnlockPhone
	}
	return CostUnlockEmail
}

// TxType returns the ledger transaction type for the field.
func (f FieldType) TxType() credit.TxType {
	if f == FieldPhone {
		return credit.TxTypeUnlockPhone
	}
	return credit.TxTypeUnlockEmail
}

// ContactData is optional metadata used to format the revealed value.
type ContactData struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Title   string `json:"title"`
}

// RevealData carries the unlocked field value.
type RevealData struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// UnlockResult is the outcome of a successful (or already-unlocked) unlock.
type UnlockResult struct {
	Data            RevealData
	TransactionID   *uuid.UUID
	NewBalance      int
	AlreadyUnlocked bool
}
