package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/leadnest/leadnest-api/internal/domain/credit"
)

// Service handles plan lookup and credit grants
type Service struct {
	credits credit.Service
}

// NewService creates billing service
func NewService(credits credit.Service) *Service {
	return &Service{credits: credits}
}

// ListPlans returns the plan catalog.
func (s *Service) ListPlans() []Plan {
	return Plans
}

// TopUp grants the plan's credits after an external payment settled.
// Idempotent per payment reference: a repeated webhook or retry does not
// grant twice.
func (s *Service) TopUp(ctx context.Context, userID uuid.UUID, req *TopUpRequest) (*credit.AdditionResult, error) {
	plan := PlanByID(req.PlanID)
	if plan == nil {
		return nil, ErrUnknownPlan
	}

	existing, err := s.credits.FindTransaction(ctx, userID, credit.TxTypePurchase, req.PaymentReference)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicatePayment
	}

	description := fmt.Sprintf("Purchased %d credits (%s plan)", plan.Credits, plan.Name)
	result, err := s.credits.Add(ctx, userID, plan.Credits, credit.TxTypePurchase, &req.PaymentReference, description)
	if err != nil {
		// The unique index closes the race between the probe and the insert.
		if errors.Is(err, credit.ErrAlreadyCharged) {
			return nil, ErrDuplicatePayment
		}
		return nil, err
	}
	return result, nil
}

// Adjust applies an admin-initiated bonus, refund or correction.
func (s *Service) Adjust(ctx context.Context, adminID uuid.UUID, req *AdjustRequest) (*credit.AdditionResult, error) {
	txType := credit.TxType(req.Type)

	var relatedEntityID *string
	if req.RelatedEntityID != "" {
		relatedEntityID = &req.RelatedEntityID
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Balance %s by admin %s", req.Type, adminID)
	}

	return s.credits.Add(ctx, req.UserID, req.Amount, txType, relatedEntityID, description)
}
