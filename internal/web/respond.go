// Package web holds the shared JSON response helpers used by every handler.
package web

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/savdohub/savdo-backend/internal/apperr"
)

// Respond writes body as JSON with the given status code.
func Respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Error writes err as a flat {"error": string} body with the status its
// classification maps to. Server-side failures are logged before they leave.
func Error(w http.ResponseWriter, err error) {
	status := statusFor(apperr.KindOf(err))
	if status >= http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
	}
	Respond(w, status, map[string]string{"error": err.Error()})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.Validation:
		return http.StatusBadRequest
	case apperr.Auth:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Upstream, apperr.Storage:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
