package order

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/savdohub/savdo-backend/internal/apperr"
	"github.com/savdohub/savdo-backend/internal/modules/auth"
	"github.com/savdohub/savdo-backend/internal/web"
)

// Handler exposes order HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.With(auth.RequireRole(auth.RoleStore)).Get("/export", h.export)
		r.With(auth.RequireRole(auth.RoleStore)).Get("/{id}", h.get)
		r.With(auth.RequireRole(auth.RoleStore)).Patch("/{id}", h.updateStatus)
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	o, err := h.service.Create(r.Context(), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusCreated, o)
}

// list returns the viewer-scoped order stream. Unauthenticated callers get
// an empty array rather than a 401 so storefront pages share one code path.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	viewer, _ := auth.FromContext(r.Context())
	orders, err := h.service.List(r.Context(), viewer)
	if err != nil {
		web.Error(w, err)
		return
	}
	if orders == nil {
		orders = []*Order{}
	}
	web.Respond(w, http.StatusOK, orders)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, apperr.New(apperr.Validation, "invalid order id"))
		return
	}
	viewer, _ := auth.FromContext(r.Context())
	o, err := h.service.Get(r.Context(), id, viewer)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, o)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, apperr.New(apperr.Validation, "invalid order id"))
		return
	}
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	o, err := h.service.UpdateStatus(r.Context(), id, req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, o)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	viewer, _ := auth.FromContext(r.Context())
	orders, err := h.service.List(r.Context(), viewer)
	if err != nil {
		web.Error(w, err)
		return
	}
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, orders); err != nil {
		web.Error(w, apperr.Wrap(apperr.Storage, "build spreadsheet", err))
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.xlsx"`)
	w.Write(buf.Bytes())
}
