package credit_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/leadnest/leadnest-api/internal/domain/credit"
	"github.com/leadnest/leadnest-api/internal/middleware"
	"github.com/leadnest/leadnest-api/internal/pkg/response"
)

type stubService struct {
	balance      int
	transactions []credit.Transaction

	gotLimit  int
	gotOffset int
}

func (s *stubService) GetBalance(context.Context, uuid.UUID) (int, error)        { return s.balance, nil }
func (s *stubService) GetDisplayBalance(context.Context, uuid.UUID) (int, error) { return s.balance, nil }

func (s *stubService) Debit(context.Context, uuid.UUID, int, credit.TxType, *string, string) (*credit.DebitResult, error) {
	return nil, credit.ErrInternal
}

func (s *stubService) DebitTx(context.Context, *sqlx.Tx, uuid.UUID, int, credit.TxType, *string, string) (*credit.DebitResult, error) {
	return nil, credit.ErrInternal
}

func (s *stubService) Add(context.Context, uuid.UUID, int, credit.TxType, *string, string) (*credit.AdditionResult, error) {
	return nil, credit.ErrInternal
}

func (s *stubService) FindTransaction(context.Context, uuid.UUID, credit.TxType, string) (*credit.Transaction, error) {
	return nil, nil
}

func (s *stubService) ListTransactions(_ context.Context, _ uuid.UUID, limit, offset int) ([]credit.Transaction, error) {
	s.gotLimit = limit
	s.gotOffset = offset
	return s.transactions, nil
}

func (s *stubService) TotalUsed(context.Context, uuid.UUID, *time.Time, *time.Time) (int, error) {
	return 0, nil
}

func (s *stubService) InvalidateBalance(context.Context, uuid.UUID) {}

func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, uuid.New())
	return req.WithContext(ctx)
}

func TestGetBalanceHandler(t *testing.T) {
	handler := credit.NewHandler(&stubService{balance: 42})

	rec := httptest.NewRecorder()
	handler.GetBalance(rec, authedRequest(http.MethodGet, "/credits/balance"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Success bool                   `json:"success"`
		Data    credit.BalanceResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Success || resp.Data.Balance != 42 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestListTransactionsHandlerPagination(t *testing.T) {
	now := time.Now()
	stub := &stubService{
		transactions: []credit.Transaction{
			{ID: uuid.New(), UserID: uuid.New(), Type: credit.TxTypeUnlockEmail, Amount: -2, CreatedAt: now},
		},
	}
	handler := credit.NewHandler(stub)

	rec := httptest.NewRecorder()
	handler.ListTransactions(rec, authedRequest(http.MethodGet, "/credits/transactions?limit=10&offset=5"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.gotLimit != 10 || stub.gotOffset != 5 {
		t.Fatalf("expected limit=10 offset=5, got limit=%d offset=%d", stub.gotLimit, stub.gotOffset)
	}

	// Out-of-range limit falls back to the default.
	rec = httptest.NewRecorder()
	handler.ListTransactions(rec, authedRequest(http.MethodGet, "/credits/transactions?limit=9999"))

	if stub.gotLimit != credit.DefaultListLimit {
		t.Fatalf("expected default limit %d, got %d", credit.DefaultListLimit, stub.gotLimit)
	}

	var resp response.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Meta == nil || resp.Meta.Limit != credit.DefaultListLimit {
		t.Fatalf("expected pagination meta, got %+v", resp.Meta)
	}
}

func TestGetUsageHandlerBadWindow(t *testing.T) {
	handler := credit.NewHandler(&stubService{})

	rec := httptest.NewRecorder()
	handler.GetUsage(rec, authedRequest(http.MethodGet, "/credits/usage?from=yesterday"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed window, got %d", rec.Code)
	}
}
