package billing

import (
	"github.com/go-chi/chi/v5"

	"github.com/leadnest/leadnest-api/internal/middleware"
)

// Routes returns authenticated billing routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/plans", h.ListPlans)
	r.Post("/topup", h.TopUp)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin())
		r.Post("/adjust", h.Adjust)
	})

	return r
}
