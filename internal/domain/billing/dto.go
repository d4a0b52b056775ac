package billing

import "github.com/google/uuid"

// TopUpRequest records a completed credit purchase. PaymentReference is the
// external payment provider's id for the charge; a reference can only grant
// credits once.
type TopUpRequest struct {
	PlanID           string `json:"plan_id" validate:"required"`
	PaymentReference string `json:"payment_reference" validate:"required,max=255"`
}

// AdjustRequest applies an admin grant or correction to a user's ledger.
type AdjustRequest struct {
	UserID          uuid.UUID `json:"user_id" validate:"required"`
	Amount          int       `json:"amount" validate:"required"`
	Type            string    `json:"type" validate:"required,oneof=bonus refund adjustment"`
	RelatedEntityID string    `json:"related_entity_id,omitempty"`
	Description     string    `json:"description,omitempty" validate:"max=500"`
}

// CreditChangeResponse reports the balance movement from a grant or top-up.
type CreditChangeResponse struct {
	TransactionID   string `json:"transaction_id"`
	PreviousBalance int    `json:"previous_balance"`
	NewBalance      int    `json:"new_balance"`
	Amount          int    `json:"amount"`
}
