package contact

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

// Handler handles contact HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates contact handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Unlock handles POST /contacts/unlock.
// The response shape is the raw unlock contract, not the standard envelope.
func (h *Handler) Unlock(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Raw(w, http.StatusBadRequest, &UnlockResponse{
			Success: false,
			Error:   "Invalid request parameters",
		})
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.Raw(w, http.StatusBadRequest, &UnlockResponse{
			Success: false,
			Error:   "Invalid request parameters",
		})
		return
	}

	result, err := h.svc.Unlock(r.Context(), userID, &req)
	if err != nil {
		h.writeUnlockError(w, r, err)
		return
	}

	resp := &UnlockResponse{
		Success:    true,
		Data:       &result.Data,
		NewBalance: &result.NewBalance,
	}
	if result.AlreadyUnlocked {
		resp.Message = "Already unlocked (no charge)"
	}
	if result.TransactionID != nil {
		resp.TransactionID = result.TransactionID.String()
	}

	response.Raw(w, http.StatusOK, resp)
}

func (h *Handler) writeUnlockError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.Raw(w, http.StatusBadRequest, &UnlockResponse{
			Success: false,
			Error:   "Invalid request parameters",
		})

	case errors.Is(err, credit.ErrInsufficientCredits):
		resp := &UnlockResponse{
			Success: false,
			Error:   "Insufficient credits",
		}
		var insufficientErr *credit.InsufficientCreditsError
		if errors.As(err, &insufficientErr) {
			resp.CurrentBalance = &insufficientErr.Balance
			resp.Required = &insufficientErr.Required
		}
		response.Raw(w, http.StatusPaymentRequired, resp)

	case errors.Is(err, ErrRevealFailed):
		response.Raw(w, http.StatusBadGateway, &UnlockResponse{
			Success: false,
			Error:   "Could not retrieve contact data, you have not been charged",
		})

	default:
		logger.FromContext(r.Context()).Error().Err(err).Msg("Unlock failed")
		response.Raw(w, http.StatusInternalServerError, &UnlockResponse{
			Success: false,
			Error:   "Internal server error",
		})
	}
}
