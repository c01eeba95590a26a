// Package auth issues and verifies the signed session tokens for both
// principal domains: store/admin users and storefront customers.
// Verification is stateless: signature plus expiry, no revocation list.
package auth

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"github.com/savdohub/savdo-backend/internal/apperr"
)

// Roles carried by store/admin tokens.
const (
	RoleSuperAdmin = "super-admin"
	RoleStore      = "magazin"
)

// Principal kinds.
const (
	KindUser     = "user"
	KindCustomer = "customer"
)

// Session cookie names for the two credential domains.
const (
	UserCookie     = "auth-token"
	CustomerCookie = "customer-token"
)

const (
	userTokenTTL     = 7 * 24 * time.Hour
	customerTokenTTL = 30 * 24 * time.Hour
)

// Claims is the JWT payload for both token domains.
type Claims struct {
	jwt.StandardClaims
	Kind string `json:"kind"`
	Role string `json:"role,omitempty"`
}

// Principal is the verified identity attached to a request context.
type Principal struct {
	ID   uuid.UUID
	Kind string
	Role string
}

// IsSuperAdmin reports whether the principal is the platform operator.
func (p *Principal) IsSuperAdmin() bool {
	return p.Kind == KindUser && p.Role == RoleSuperAdmin
}

// IsStore reports whether the principal is a store (magazin) account.
func (p *Principal) IsStore() bool {
	return p.Kind == KindUser && p.Role == RoleStore
}

// Tokens signs and verifies session tokens with a shared HMAC secret.
type Tokens struct {
	secret []byte
}

// NewTokens creates a token signer around the given secret.
func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

// IssueUser signs a 7-day store/admin session token.
func (t *Tokens) IssueUser(id uuid.UUID, role string) (string, error) {
	return t.sign(id, KindUser, role, userTokenTTL)
}

// IssueCustomer signs a 30-day customer session token.
func (t *Tokens) IssueCustomer(id uuid.UUID) (string, error) {
	return t.sign(id, KindCustomer, "", customerTokenTTL)
}

func (t *Tokens) sign(id uuid.UUID, kind, role string, ttl time.Duration) (string, error) {
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   id.String(),
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
		Kind: kind,
		Role: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses a token string and returns the principal it carries.
func (t *Tokens) Verify(tokenString string) (*Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.New(apperr.Auth, "unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.New(apperr.Auth, "invalid or expired session")
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperr.New(apperr.Auth, "invalid session subject")
	}
	return &Principal{ID: id, Kind: claims.Kind, Role: claims.Role}, nil
}
