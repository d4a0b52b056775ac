package billing

import "errors"

var (
	ErrUnknownPlan      = errors.New("unknown plan")
	ErrDuplicatePayment = errors.New("payment reference already processed")
)
