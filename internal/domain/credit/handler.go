package credit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/leadnest/leadnest-api/internal/middleware"
	"github.com/leadnest/leadnest-api/internal/pkg/logger"
	"github.com/leadnest/leadnest-api/internal/pkg/response"
)

// Handler handles credit HTTP requests
type Handler struct {
	svc Service
}

// NewHandler creates credit handler
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// GetBalance handles GET /credits/balance
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	balance, err := h.svc.GetDisplayBalance(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("Failed to read balance")
		response.InternalError(w)
		return
	}

	response.OK(w, &BalanceResponse{Balance: balance})
}

// ListTransactions handles GET /credits/transactions
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	limit := DefaultListLimit
	offset := 0

	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= MaxListLimit {
			limit = v
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}

	transactions, err := h.svc.ListTransactions(r.Context(), userID, limit, offset)
	if err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("Failed to list transactions")
		response.InternalError(w)
		return
	}

	items := make([]*TransactionResponse, len(transactions))
	for i := range transactions {
		items[i] = ToResponse(&transactions[i])
	}

	response.WithMeta(w, items, response.Meta{
		Total:  len(items),
		Limit:  limit,
		Offset: offset,
	})
}

// GetUsage handles GET /credits/usage
func (h *Handler) GetUsage(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var from, to *time.Time
	if f := r.URL.Query().Get("from"); f != "" {
		t, err := time.Parse(time.RFC3339, f)
		if err != nil {
			response.BadRequest(w, "Invalid 'from' timestamp, expected RFC3339")
			return
		}
		from = &t
	}
	if s := r.URL.Query().Get("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			response.BadRequest(w, "Invalid 'to' timestamp, expected RFC3339")
			return
		}
		to = &t
	}

	total, err := h.svc.TotalUsed(r.Context(), userID, from, to)
	if err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("Failed to compute usage")
		response.InternalError(w)
		return
	}

	resp := &UsageResponse{TotalUsed: total}
	if from != nil {
		resp.From = from.Format(time.RFC3339)
	}
	if to != nil {
		resp.To = to.Format(time.RFC3339)
	}

	response.OK(w, resp)
}
