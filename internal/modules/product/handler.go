package product

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/savdohub/savdo-backend/internal/apperr"
	"github.com/savdohub/savdo-backend/internal/modules/auth"
	"github.com/savdohub/savdo-backend/internal/web"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.With(auth.RequireRole(auth.RoleStore)).Post("/", h.create)
		r.With(auth.RequireRole(auth.RoleStore)).Put("/{id}", h.update)
		r.With(auth.RequireRole(auth.RoleStore)).Delete("/{id}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	viewer, _ := auth.FromContext(r.Context())
	products, err := h.service.List(r.Context(), viewer, r.URL.Query().Get("category"))
	if err != nil {
		// The storefront treats a broken catalog as empty rather than down.
		log.Printf("list products: %v", err)
		web.Respond(w, http.StatusOK, []*Product{})
		return
	}
	if products == nil {
		products = []*Product{}
	}
	web.Respond(w, http.StatusOK, products)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, apperr.New(apperr.Validation, "invalid product id"))
		return
	}
	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, p)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	actor, _ := auth.FromContext(r.Context())
	p, err := h.service.Create(r.Context(), req, actor)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusCreated, p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, apperr.New(apperr.Validation, "invalid product id"))
		return
	}
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	actor, _ := auth.FromContext(r.Context())
	p, err := h.service.Update(r.Context(), id, req, actor)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, p)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, apperr.New(apperr.Validation, "invalid product id"))
		return
	}
	actor, _ := auth.FromContext(r.Context())
	if err := h.service.Delete(r.Context(), id, actor); err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, map[string]string{"status": "product deleted"})
}
