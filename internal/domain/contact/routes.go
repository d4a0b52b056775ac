package contact

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns authenticated contact routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/unlock", h.Unlock)

	return r
}
