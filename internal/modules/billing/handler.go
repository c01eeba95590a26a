package billing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/savdohub/savdo-backend/internal/modules/auth"
	"github.com/savdohub/savdo-backend/internal/web"
)

// Handler exposes the subscription ledger endpoints. All of them are
// super-admin territory.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/billing", func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleSuperAdmin))
		r.Post("/run-monthly", h.runMonthly)
		r.Get("/balances", h.balances)
	})
}

func (h *Handler) runMonthly(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.RunMonthlyUpdate(r.Context())
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, res)
}

func (h *Handler) balances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.service.Balances(r.Context())
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, balances)
}
