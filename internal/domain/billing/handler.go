package billing

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/leadnest/leadnest-api/internal/domain/credit"
	"github.com/leadnest/leadnest-api/internal/middleware"
	"github.com/leadnest/leadnest-api/internal/pkg/logger"
	"github.com/leadnest/leadnest-api/internal/pkg/response"
	"github.com/leadnest/leadnest-api/internal/pkg/validator"
)

// Handler handles billing HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates billing handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ListPlans handles GET /billing/plans
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.svc.ListPlans())
}

// TopUp handles POST /billing/topup
func (h *Handler) TopUp(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req TopUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.svc.TopUp(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownPlan):
			response.BadRequest(w, "Unknown plan")
		case errors.Is(err, ErrDuplicatePayment):
			response.Conflict(w, "Payment reference already processed")
		default:
			logger.FromContext(r.Context()).Error().Err(err).Msg("Top-up failed")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, toCreditChangeResponse(result))
}

// Adjust handles POST /billing/adjust (admin only)
func (h *Handler) Adjust(w http.ResponseWriter, r *http.Request) {
	adminID := middleware.GetUserID(r.Context())

	var req AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.svc.Adjust(r.Context(), adminID, &req)
	if err != nil {
		switch {
		case errors.Is(err, credit.ErrInvalidAmount), errors.Is(err, credit.ErrInvalidTxType):
			response.BadRequest(w, "Invalid amount for transaction type")
		case errors.Is(err, credit.ErrInsufficientCredits):
			response.Conflict(w, "Correction would drive the balance negative")
		default:
			logger.FromContext(r.Context()).Error().Err(err).Msg("Adjustment failed")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, toCreditChangeResponse(result))
}

func toCreditChangeResponse(result *credit.AdditionResult) *CreditChangeResponse {
	return &CreditChangeResponse{
		TransactionID:   result.Transaction.ID.String(),
		PreviousBalance: result.PreviousBalance,
		NewBalance:      result.NewBalance,
		Amount:          result.Transaction.Amount,
	}
}
