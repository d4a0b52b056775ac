package credit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const queryTimeout = 3 * time.Second

const sumBalanceQuery = `
	SELECT COALESCE(SUM(amount), 0)
	FROM credit_transactions
	WHERE user_id = $1`

type Repository interface {
	Balance(ctx context.Context, userID uuid.UUID) (int, error)
	Debit(ctx context.Context, userID uuid.UUID, amount int, txType TxType, relatedEntityID *string, description string) (*DebitResult, error)
	DebitTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int, txType TxType, relatedEntityID *string, description string) (*DebitResult, error)
	Add(ctx context.Context, userID uuid.UUID, amount int, txType TxType, relatedEntityID *string, description string) (*AdditionResult, error)
	FindByRelatedEntity(ctx context.Context, userID uuid.UUID, txType TxType, relatedEntityID string) (*Transaction, error)
	List(ctx context.Context, userID uuid.UUID, pagination Pagination) ([]Transaction, error)
	TotalUsed(ctx context.Context, userID uuid.UUID, from, to *time.Time) (int, error)
}

// LedgerRepository provides the append-only credit ledger. The balance is
// always derived from the transaction rows; check-then-append sequences are
// serialized per user with an advisory transaction lock.
type LedgerRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Balance returns the authoritative balance at call time.
func (r *LedgerRepository) Balance(ctx context.Context, userID uuid.UUID) (int, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var balance int
	if err := r.db.GetContext(ctx2, &balance, sumBalanceQuery, userID); err != nil {
		return 0, fmt.Errorf("%w: get balance", ErrInternal)
	}
	return balance, nil
}

// Debit appends a negative ledger row after verifying the balance covers the
// amount, all within a single transaction.
func (r *LedgerRepository) Debit(ctx context.Context, userID uuid.UUID, amount int, txType TxType, relatedEntityID *string, description string) (*DebitResult, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	result, err := r.DebitTx(ctx2, tx, userID, amount, txType, relatedEntityID, description)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit tx", ErrInternal)
	}
	return result, nil
}

// DebitTx performs the balance check and debit append inside a caller-owned
// transaction. The caller commits or rolls back; this lets the unlock flow
// keep the debit and the reveal as one unit of work.
func (r *LedgerRepository) DebitTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int, txType TxType, relatedEntityID *string, description string) (*DebitResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !txType.IsDebit() {
		return nil, ErrInvalidTxType
	}

	if err := r.lockUser(ctx, tx, userID); err != nil {
		return nil, err
	}

	// Idempotency: one charge per (user, type, related entity)
	if relatedEntityID != nil {
		existing, err := findByRelatedEntity(ctx, tx, userID, txType, *relatedEntityID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrAlreadyCharged
		}
	}

	var balance int
	if err := tx.QueryRowContext(ctx, sumBalanceQuery, userID).Scan(&balance); err != nil {
		return nil, fmt.Errorf("%w: sum balance", ErrInternal)
	}

	if balance < amount {
		return nil, &InsufficientCreditsError{Balance: balance, Required: amount}
	}

	t, err := insertTransaction(ctx, tx, userID, -amount, txType, relatedEntityID, description)
	if err != nil {
		return nil, err
	}

	return &DebitResult{
		Transaction:     t,
		PreviousBalance: balance,
		NewBalance:      balance - amount,
	}, nil
}

// Add appends a signed credit row. Negative corrections are permitted for
// refund/adjustment types but must not drive the balance below zero.
func (r *LedgerRepository) Add(ctx context.Context, userID uuid.UUID, amount int, txType TxType, relatedEntityID *string, description string) (*AdditionResult, error) {
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	if !txType.Valid() || txType.IsDebit() {
		return nil, ErrInvalidTxType
	}
	if amount < 0 && txType != TxTypeRefund && txType != TxTypeAdjustment {
		return nil, ErrInvalidAmount
	}

	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	if err := r.lockUser(ctx2, tx, userID); err != nil {
		return nil, err
	}

	var balance int
	if err := tx.QueryRowContext(ctx2, sumBalanceQuery, userID).Scan(&balance); err != nil {
		return nil, fmt.Errorf("%w: sum balance", ErrInternal)
	}

	if balance+amount < 0 {
		return nil, &InsufficientCreditsError{Balance: balance, Required: -amount}
	}

	t, err := insertTransaction(ctx2, tx, userID, amount, txType, relatedEntityID, description)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit tx", ErrInternal)
	}

	return &AdditionResult{
		Transaction:     t,
		PreviousBalance: balance,
		NewBalance:      balance + amount,
	}, nil
}

// FindByRelatedEntity returns the transaction matching the idempotency key
// (user, type, related entity), or nil when none exists.
func (r *LedgerRepository) FindByRelatedEntity(ctx context.Context, userID uuid.UUID, txType TxType, relatedEntityID string) (*Transaction, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var t Transaction
	err := r.db.GetContext(ctx2, &t, `
		SELECT id, user_id, type, amount, related_entity_id, description, created_at
		FROM credit_transactions
		WHERE user_id = $1 AND type = $2 AND related_entity_id = $3
		LIMIT 1
	`, userID, txType, relatedEntityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: find by related entity", ErrInternal)
	}
	return &t, nil
}

// List returns transactions most recent first.
func (r *LedgerRepository) List(ctx context.Context, userID uuid.UUID, pagination Pagination) ([]Transaction, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	limit := pagination.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := pagination.Offset
	if offset < 0 {
		offset = 0
	}

	transactions := make([]Transaction, 0)
	err := r.db.SelectContext(ctx2, &transactions, `
		SELECT id, user_id, type, amount, related_entity_id, description, created_at
		FROM credit_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list transactions", ErrInternal)
	}

	return transactions, nil
}

// TotalUsed returns the sum of credits consumed by debits in the window.
// Nil bounds leave that side of the window open.
func (r *LedgerRepository) TotalUsed(ctx context.Context, userID uuid.UUID, from, to *time.Time) (int, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT COALESCE(-SUM(amount), 0)
		FROM credit_transactions
		WHERE user_id = $1 AND amount < 0`
	args := []interface{}{userID}
	idx := 2

	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", idx)
		args = append(args, *from)
		idx++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", idx)
		args = append(args, *to)
	}

	var total int
	if err := r.db.GetContext(ctx2, &total, query, args...); err != nil {
		return 0, fmt.Errorf("%w: total used", ErrInternal)
	}
	return total, nil
}

// lockUser serializes all check-then-append sequences for one user. The lock
// is released at transaction end.
func (r *LedgerRepository) lockUser(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) error {
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, userID.String()); err != nil {
		return fmt.Errorf("%w: acquire user lock", ErrInternal)
	}
	return nil
}

func findByRelatedEntity(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, txType TxType, relatedEntityID string) (*Transaction, error) {
	var t Transaction
	err := tx.QueryRowxContext(ctx, `
		SELECT id, user_id, type, amount, related_entity_id, description, created_at
		FROM credit_transactions
		WHERE user_id = $1 AND type = $2 AND related_entity_id = $3
		LIMIT 1
	`, userID, txType, relatedEntityID).StructScan(&t)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: find by related entity", ErrInternal)
	}
	return &t, nil
}

func insertTransaction(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int, txType TxType, relatedEntityID *string, description string) (*Transaction, error) {
	t := &Transaction{
		UserID:          userID,
		Type:            txType,
		Amount:          amount,
		RelatedEntityID: relatedEntityID,
		Description:     description,
	}

	err := tx.QueryRowContext(ctx, `
		INSERT INTO credit_transactions (id, user_id, type, amount, related_entity_id, description)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, userID, txType, amount, relatedEntityID, description).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyCharged
		}
		return nil, fmt.Errorf("%w: insert transaction", ErrInternal)
	}
	return t, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
