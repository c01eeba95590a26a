package notify

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/savdohub/savdo-backend/internal/apperr"
	"github.com/savdohub/savdo-backend/internal/modules/auth"
	"github.com/savdohub/savdo-backend/internal/web"
)

// SendRequest is the payload for POST /api/telegram/send.
type SendRequest struct {
	ChatID  int64  `json:"chat_id"`
	Message string `json:"message"`
}

// Handler exposes the direct Telegram send endpoint.
type Handler struct{ sender Sender }

func NewHandler(sender Sender) *Handler { return &Handler{sender: sender} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.With(auth.RequireRole(auth.RoleSuperAdmin)).Post("/api/telegram/send", h.send)
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	if req.ChatID == 0 || req.Message == "" {
		web.Error(w, apperr.New(apperr.Validation, "chat_id and message are required"))
		return
	}
	if err := h.sender.Send(req.ChatID, req.Message); err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, map[string]string{"status": "sent"})
}
