package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/savdohub/savdo-backend/internal/apperr"
	"github.com/savdohub/savdo-backend/internal/web"
)

type contextKey struct{}

// FromContext returns the verified principal for the request, if any.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(*Principal)
	return p, ok
}

// Middleware resolves the session token from the Authorization header or the
// session cookies and attaches the principal to the request context. It never
// rejects: routes that demand a principal wrap themselves in RequireRole.
func (t *Tokens) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := tokenFromRequest(r); raw != "" {
			if p, err := t.Verify(raw); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), contextKey{}, p))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole guards a route: the caller must hold a store/admin session
// whose role equals required. A super-admin session passes every check.
func RequireRole(required string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := FromContext(r.Context())
			if !ok || p.Kind != KindUser {
				web.Error(w, apperr.New(apperr.Auth, "authentication required"))
				return
			}
			if p.Role != required && p.Role != RoleSuperAdmin {
				web.Error(w, apperr.New(apperr.Forbidden, "insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(UserCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if c, err := r.Cookie(CustomerCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return ""
}

// SetSessionCookie writes an HTTP-only session cookie for the given domain.
func SetSessionCookie(w http.ResponseWriter, name, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
