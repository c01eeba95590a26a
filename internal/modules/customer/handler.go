package customer

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/savdohub/savdo-backend/internal/apperr"
	"github.com/savdohub/savdo-backend/internal/modules/auth"
	"github.com/savdohub/savdo-backend/internal/web"
)

// Handler exposes customer registration and login endpoints.
type Handler struct {
	service Service
	tokens  *auth.Tokens
}

func NewHandler(service Service, tokens *auth.Tokens) *Handler {
	return &Handler{service: service, tokens: tokens}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/customers", func(r chi.Router) {
		r.Post("/login", h.login)
		r.Post("/register", h.register)
		r.With(auth.RequireRole(auth.RoleSuperAdmin)).Get("/", h.list)
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	c, err := h.service.Login(r.Context(), req.Phone, req.Password)
	if err != nil {
		web.Error(w, err)
		return
	}
	token, err := h.tokens.IssueCustomer(c.ID)
	if err != nil {
		web.Error(w, apperr.Wrap(apperr.Storage, "issue session token", err))
		return
	}
	auth.SetSessionCookie(w, auth.CustomerCookie, token)
	web.Respond(w, http.StatusOK, map[string]interface{}{
		"customer": c,
		"token":    token,
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	c, created, err := h.service.RegisterOrUpdate(r.Context(), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	token, err := h.tokens.IssueCustomer(c.ID)
	if err != nil {
		web.Error(w, apperr.Wrap(apperr.Storage, "issue session token", err))
		return
	}
	auth.SetSessionCookie(w, auth.CustomerCookie, token)
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	web.Respond(w, status, map[string]interface{}{
		"customer": c,
		"token":    token,
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.List(r.Context())
	if err != nil {
		web.Error(w, err)
		return
	}
	if customers == nil {
		customers = []*Customer{}
	}
	web.Respond(w, http.StatusOK, customers)
}
