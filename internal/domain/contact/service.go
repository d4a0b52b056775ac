package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/leadnest/leadnest-api/internal/domain/credit"
	"github.com/leadnest/leadnest-api/internal/pkg/logger"
)

// unitTimeout bounds the whole debit-and-reveal unit of work.
const unitTimeout = 10 * time.Second

// Service handles the unlock-gated reveal workflow
type Service struct {
	db            *sqlx.DB
	credits       credit.Service
	reveal        RevealProvider
	revealTimeout time.Duration
}

// NewService creates contact service
func NewService(db *sqlx.DB, credits credit.Service, reveal RevealProvider, revealTimeout time.Duration) *Service {
	return &Service{
		db:            db,
		credits:       credits,
		reveal:        reveal,
		revealTimeout: revealTimeout,
	}
}

// Unlock reveals one contact field in exchange for credits.
//
// The debit and the reveal run as one unit of work: the debit row is
// committed only after the reveal provider produced a value, so a reveal
// failure never leaves the user charged. Repeating the unlock for the same
// (user, contact, field) re-derives the value without a second charge.
func (s *Service) Unlock(ctx context.Context, userID uuid.UUID, req *UnlockRequest) (*UnlockResult, error) {
	field := FieldType(req.Type)
	if !field.Valid() || strings.TrimSpace(req.ContactID) == "" {
		return nil, ErrInvalidRequest
	}

	ctx, cancel := context.WithTimeout(ctx, unitTimeout)
	defer cancel()

	txType := field.TxType()
	cost := field.Cost()

	// Prior unlock: return the value again without charging.
	existing, err := s.credits.FindTransaction(ctx, userID, txType, req.ContactID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.alreadyUnlocked(ctx, userID, field, req)
	}

	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: begin unlock tx", credit.ErrInternal)
	}
	defer tx.Rollback()

	description := fmt.Sprintf("Unlocked %s for contact %s", field, req.ContactID)
	debit, err := s.credits.DebitTx(ctx, tx, userID, cost, txType, &req.ContactID, description)
	if err != nil {
		// A concurrent request charged this contact first; treat as unlocked.
		if errors.Is(err, credit.ErrAlreadyCharged) {
			return s.alreadyUnlocked(ctx, userID, field, req)
		}
		return nil, err
	}

	value, err := s.revealField(ctx, req.ContactID, field, req.ContactData)
	if err != nil {
		// Rollback via defer: the debit never commits.
		logger.FromContext(ctx).Error().
			Err(err).
			Str("contact_id", req.ContactID).
			Str("field", string(field)).
			Msg("Reveal failed after debit, rolling back")
		return nil, fmt.Errorf("%w: %v", ErrRevealFailed, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit unlock tx", credit.ErrInternal)
	}
	s.credits.InvalidateBalance(ctx, userID)

	txID := debit.Transaction.ID
	return &UnlockResult{
		Data:          fieldData(field, value),
		TransactionID: &txID,
		NewBalance:    debit.NewBalance,
	}, nil
}

func (s *Service) alreadyUnlocked(ctx context.Context, userID uuid.UUID, field FieldType, req *UnlockRequest) (*UnlockResult, error) {
	value, err := s.revealField(ctx, req.ContactID, field, req.ContactData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRevealFailed, err)
	}

	balance, err := s.credits.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UnlockResult{
		Data:            fieldData(field, value),
		NewBalance:      balance,
		AlreadyUnlocked: true,
	}, nil
}

func (s *Service) revealField(ctx context.Context, contactID string, field FieldType, data *ContactData) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.revealTimeout)
	defer cancel()
	return s.reveal.Reveal(ctx, contactID, field, data)
}

func fieldData(field FieldType, value string) RevealData {
	if field == FieldPhone {
		return RevealData{Phone: value}
	}
	return RevealData{Email: value}
}
