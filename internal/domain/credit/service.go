package credit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Service defines the credit ledger operations
type Service interface {
	// GetBalance returns the authoritative balance, derived from the ledger
	// at call time. Use this wherever the number feeds a decision.
	GetBalance(ctx context.Context, userID uuid.UUID) (int, error)

	// GetDisplayBalance returns a possibly cached balance for dashboards and
	// widgets. It must never back a debit decision.
	GetDisplayBalance(ctx context.Context, userID uuid.UUID) (int, error)

	// Debit atomically checks the balance and appends a negative transaction.
	// Returns ErrInsufficientCredits (as *InsufficientCreditsError) when the
	// balance cannot cover the amount, ErrAlreadyCharged when a transaction
	// with the same (user, type, related entity) already exists.
	Debit(ctx context.Context, userID uuid.UUID, amount int, txType TxType, relatedEntityID *string, description string) (*DebitResult, error)

	// DebitTx debits within an external transaction. Used when the debit must
	// be atomic with another operation; the caller commits or rolls back and
	// calls InvalidateBalance after a successful commit.
	DebitTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int, txType TxType, relatedEntityID *string, description string) (*DebitResult, error)

	// Add appends a signed credit transaction (purchase, bonus, refund,
	// adjustment) and returns previous and new balance.
	Add(ctx context.Context, userID uuid.UUID, amount int, txType TxType, relatedEntityID *string, description string) (*AdditionResult, error)

	// FindTransaction returns the prior transaction for the idempotency key
	// (user, type, related entity), or nil when none exists.
	FindTransaction(ctx context.Context, userID uuid.UUID, txType TxType, relatedEntityID string) (*Transaction, error)

	// ListTransactions returns paginated history, most recent first.
	ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Transaction, error)

	// TotalUsed returns credits consumed by unlocks within the window.
	TotalUsed(ctx context.Context, userID uuid.UUID, from, to *time.Time) (int, error)

	// InvalidateBalance drops the cached display balance after an external
	// transaction committed a ledger write.
	InvalidateBalance(ctx context.Context, userID uuid.UUID)
}

type service struct {
	repo  Repository
	cache *BalanceCache
}

// NewService creates a credit service. cache may be nil.
func NewService(db *sqlx.DB, cache *BalanceCache) Service {
	return &service{
		repo:  NewRepository(db),
		cache: cache,
	}
}

// NewServiceWithRepository wires an explicit repository, mainly for tests.
func NewServiceWithRepository(repo Repository, cache *BalanceCache) Service {
	return &service{repo: repo, cache: cache}
}

func (s *service) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.Balance(ctx, userID)
}

func (s *service) GetDisplayBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	if balance, ok := s.cache.Get(ctx, userID); ok {
		return balance, nil
	}

	balance, err := s.repo.Balance(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.cache.Set(ctx, userID, balance)
	return balance, nil
}

func (s *service) Debit(ctx context.Context, userID uuid.UUID, amount int, txType TxType, relatedEntityID *string, description string) (*DebitResult, error) {
	result, err := s.repo.Debit(ctx, userID, amount, txType, relatedEntityID, description)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, userID)
	return result, nil
}

func (s *service) DebitTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int, txType TxType, relatedEntityID *string, description string) (*DebitResult, error) {
	return s.repo.DebitTx(ctx, tx, userID, amount, txType, relatedEntityID, description)
}

func (s *service) Add(ctx context.Context, userID uuid.UUID, amount int, txType TxType, relatedEntityID *string, description string) (*AdditionResult, error) {
	result, err := s.repo.Add(ctx, userID, amount, txType, relatedEntityID, description)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, userID)
	return result, nil
}

func (s *service) FindTransaction(ctx context.Context, userID uuid.UUID, txType TxType, relatedEntityID string) (*Transaction, error) {
	return s.repo.FindByRelatedEntity(ctx, userID, txType, relatedEntityID)
}

func (s *service) ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Transaction, error) {
	return s.repo.List(ctx, userID, Pagination{Limit: limit, Offset: offset})
}

func (s *service) TotalUsed(ctx context.Context, userID uuid.UUID, from, to *time.Time) (int, error) {
	return s.repo.TotalUsed(ctx, userID, from, to)
}

func (s *service) InvalidateBalance(ctx context.Context, userID uuid.UUID) {
	s.cache.Invalidate(ctx, userID)
}
