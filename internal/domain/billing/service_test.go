package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/leadnest/leadnest-api/internal/domain/billing"
	"github.com/leadnest/leadnest-api/internal/domain/credit"
)

func TestTopUpUnknownPlan(t *testing.T) {
	svc := billing.NewService(&creditStub{})

	_, err := svc.TopUp(context.Background(), uuid.New(), &billing.TopUpRequest{
		PlanID:           "platinum",
		PaymentReference: "pay-1",
	})
	if !errors.Is(err, billing.ErrUnknownPlan) {
		t.Fatalf("expected ErrUnknownPlan, got %v", err)
	}
}

func TestTopUpDuplicateReference(t *testing.T) {
	stub := &creditStub{
		existing: &credit.Transaction{ID: uuid.New(), Type: credit.TxTypePurchase, Amount: 500},
	}
	svc := billing.NewService(stub)

	_, err := svc.TopUp(context.Background(), uuid.New(), &billing.TopUpRequest{
		PlanID:           "pro",
		PaymentReference: "pay-1",
	})
	if !errors.Is(err, billing.ErrDuplicatePayment) {
		t.Fatalf("expected ErrDuplicatePayment, got %v", err)
	}
	if stub.addCalls != 0 {
		t.Fatalf("duplicate reference reached the ledger (%d add calls)", stub.addCalls)
	}
}

func TestTopUpGrantsPlanCredits(t *testing.T) {
	stub := &creditStub{
		addResult: &credit.AdditionResult{
			Transaction:     &credit.Transaction{ID: uuid.New(), Type: credit.TxTypePurchase, Amount: 500},
			PreviousBalance: 3,
			NewBalance:      503,
		},
	}
	svc := billing.NewService(stub)

	result, err := svc.TopUp(context.Background(), uuid.New(), &billing.TopUpRequest{
		PlanID:           "pro",
		PaymentReference: "pay-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stub.addedAmount != 500 {
		t.Fatalf("expected 500 credits granted for pro plan, got %d", stub.addedAmount)
	}
	if stub.addedType != credit.TxTypePurchase {
		t.Fatalf("expected purchase transaction, got %s", stub.addedType)
	}
	if stub.addedRef == nil || *stub.addedRef != "pay-1" {
		t.Fatalf("expected payment reference recorded, got %v", stub.addedRef)
	}
	if result.NewBalance != 503 {
		t.Fatalf("expected new balance 503, got %d", result.NewBalance)
	}
}

func TestTopUpInsertRaceMapsToDuplicate(t *testing.T) {
	stub := &creditStub{addErr: credit.ErrAlreadyCharged}
	svc := billing.NewService(stub)

	_, err := svc.TopUp(context.Background(), uuid.New(), &billing.TopUpRequest{
		PlanID:           "growth",
		PaymentReference: "pay-2",
	})
	if !errors.Is(err, billing.ErrDuplicatePayment) {
		t.Fatalf("expected ErrDuplicatePayment, got %v", err)
	}
}

func TestAdjustDefaultDescription(t *testing.T) {
	stub := &creditStub{
		addResult: &credit.AdditionResult{
			Transaction:     &credit.Transaction{ID: uuid.New(), Type: credit.TxTypeBonus, Amount: 25},
			PreviousBalance: 0,
			NewBalance:      25,
		},
	}
	svc := billing.NewService(stub)

	adminID := uuid.New()
	_, err := svc.Adjust(context.Background(), adminID, &billing.AdjustRequest{
		UserID: uuid.New(),
		Amount: 25,
		Type:   "bonus",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stub.addedType != credit.TxTypeBonus {
		t.Fatalf("expected bonus transaction, got %s", stub.addedType)
	}
	if stub.addedDescription == "" {
		t.Fatal("expected a default description")
	}
	if stub.addedRef != nil {
		t.Fatalf("expected no related entity, got %v", stub.addedRef)
	}
}

func TestPlanCatalog(t *testing.T) {
	if billing.PlanByID("pro") == nil {
		t.Fatal("expected pro plan in catalog")
	}
	if billing.PlanByID("nope") != nil {
		t.Fatal("expected nil for unknown plan")
	}

	free := billing.PlanByID("free")
	if free == nil || free.Credits != 10 || free.Monthly {
		t.Fatalf("unexpected free plan: %+v", free)
	}
}

/* =========================
   credit.Service stub
   ========================= */

type creditStub struct {
	existing *credit.Transaction

	addResult *credit.AdditionResult
	addErr    error

	addCalls         int
	addedAmount      int
	addedType        credit.TxType
	addedRef         *string
	addedDescription string
}

func (s *creditStub) GetBalance(context.Context, uuid.UUID) (int, error)        { return 0, nil }
func (s *creditStub) GetDisplayBalance(context.Context, uuid.UUID) (int, error) { return 0, nil }

func (s *creditStub) Debit(context.Context, uuid.UUID, int, credit.TxType, *string, string) (*credit.DebitResult, error) {
	return nil, credit.ErrInternal
}

func (s *creditStub) DebitTx(context.Context, *sqlx.Tx, uuid.UUID, int, credit.TxType, *string, string) (*credit.DebitResult, error) {
	return nil, credit.ErrInternal
}

func (s *creditStub) Add(_ context.Context, _ uuid.UUID, amount int, txType credit.TxType, relatedEntityID *string, description string) (*credit.AdditionResult, error) {
	s.addCalls++
	s.addedAmount = amount
	s.addedType = txType
	s.addedRef = relatedEntityID
	s.addedDescription = description
	if s.addErr != nil {
		return nil, s.addErr
	}
	return s.addResult, nil
}

func (s *creditStub) FindTransaction(context.Context, uuid.UUID, credit.TxType, string) (*credit.Transaction, error) {
	return s.existing, nil
}

func (s *creditStub) ListTransactions(context.Context, uuid.UUID, int, int) ([]credit.Transaction, error) {
	return nil, nil
}

func (s *creditStub) TotalUsed(context.Context, uuid.UUID, *time.Time, *time.Time) (int, error) {
	return 0, nil
}

func (s *creditStub) InvalidateBalance(context.Context, uuid.UUID) {}
