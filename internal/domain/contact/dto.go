package contact

// UnlockRequest is the unlock endpoint payload. Caller identity arrives
// out-of-band via the authenticated token.
type UnlockRequest struct {
	ContactID   string       `json:"contactId" validate:"required,max=255"`
	Type        string       `json:"type" validate:"required,contact_field"`
	ContactData *ContactData `json:"contactData,omitempty"`
}

// UnlockResponse is the wire shape the dashboard depends on. Unlike the rest
// of the API it is not wrapped in the standard envelope.
type UnlockResponse struct {
	Success        bool        `json:"success"`
	Data           *RevealData `json:"data,omitempty"`
	Message        string      `json:"message,omitempty"`
	Error          string      `json:"error,omitempty"`
	TransactionID  string      `json:"transaction_id,omitempty"`
	NewBalance     *int        `json:"new_balance,omitempty"`
	CurrentBalance *int        `json:"current_balance,omitempty"`
	Required       *int        `json:"required,omitempty"`
}
