package user

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/savdohub/savdo-backend/internal/apperr"
	"github.com/savdohub/savdo-backend/internal/modules/auth"
	"github.com/savdohub/savdo-backend/internal/web"
)

// Handler exposes account and store/admin login endpoints.
type Handler struct {
	service Service
	tokens  *auth.Tokens
}

func NewHandler(service Service, tokens *auth.Tokens) *Handler {
	return &Handler{service: service, tokens: tokens}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Post("/api/auth/login", h.login)

	r.Route("/api/users", func(r chi.Router) {
		r.With(auth.RequireRole(auth.RoleSuperAdmin)).Post("/", h.create)
		r.With(auth.RequireRole(auth.RoleSuperAdmin)).Get("/", h.list)
		r.With(auth.RequireRole(auth.RoleStore)).Get("/me", h.me)
		r.With(auth.RequireRole(auth.RoleStore)).Put("/{id}", h.update)
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	u, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		web.Error(w, err)
		return
	}
	token, err := h.tokens.IssueUser(u.ID, u.Role)
	if err != nil {
		web.Error(w, apperr.Wrap(apperr.Storage, "issue session token", err))
		return
	}
	auth.SetSessionCookie(w, auth.UserCookie, token)
	web.Respond(w, http.StatusOK, map[string]interface{}{
		"user":  u,
		"token": token,
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	u, err := h.service.Create(r.Context(), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusCreated, u)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		web.Error(w, err)
		return
	}
	if users == nil {
		users = []*User{}
	}
	web.Respond(w, http.StatusOK, users)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	u, err := h.service.Get(r.Context(), p.ID)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, u)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, apperr.New(apperr.Validation, "invalid user id"))
		return
	}
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	p, _ := auth.FromContext(r.Context())
	u, err := h.service.Update(r.Context(), id, req, p)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, u)
}
