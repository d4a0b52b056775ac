package credit

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns authenticated credit routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/balance", h.GetBalance)
	r.Get("/transactions", h.ListTransactions)
	r.Get("/usage", h.GetUsage)

	return r
}
