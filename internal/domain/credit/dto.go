package credit

import (
	"time"

	"github.com/google/uuid"
)

// BalanceResponse for GET /credits/balance
type BalanceResponse struct {
	Balance int `json:"balance"`
}

// TransactionResponse for API responses
type TransactionResponse struct {
	ID              uuid.UUID `json:"id"`
	Type            string    `json:"type"`
	Amount          int       `json:"amount"`
	RelatedEntityID string    `json:"related_entity_id,omitempty"`
	Description     string    `json:"description,omitempty"`
	CreatedAt       string    `json:"created_at"`
}

// ToResponse converts entity to response
func ToResponse(t *Transaction) *TransactionResponse {
	resp := &TransactionResponse{
		ID:          t.ID,
		Type:        string(t.Type),
		Amount:      t.Amount,
		Description: t.Description,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
	if t.RelatedEntityID != nil {
		resp.RelatedEntityID = *t.RelatedEntityID
	}
	return resp
}

// UsageResponse for GET /credits/usage
type UsageResponse struct {
	TotalUsed int    `json:"total_used"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
}
