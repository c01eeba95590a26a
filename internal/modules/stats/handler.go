package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/savdohub/savdo-backend/internal/modules/auth"
	"github.com/savdohub/savdo-backend/internal/web"
)

// Handler exposes statistics HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/stats", func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleStore))
		r.Get("/", h.summary)
		r.Get("/sales", h.sales)
	})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	viewer, _ := auth.FromContext(r.Context())
	sum, err := h.service.Summary(r.Context(), viewer)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, sum)
}

func (h *Handler) sales(w http.ResponseWriter, r *http.Request) {
	viewer, _ := auth.FromContext(r.Context())
	ranking, err := h.service.Sales(r.Context(), viewer)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, ranking)
}
