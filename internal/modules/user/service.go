package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/savdohub/savdo-backend/internal/apperr"
	"github.com/savdohub/savdo-backend/internal/modules/auth"
)

// Service defines account business logic.
type Service interface {
	// Login checks the credential and returns the matching account.
	Login(ctx context.Context, username, password string) (*User, error)

	// Create registers a new store or super-admin account.
	Create(ctx context.Context, req CreateRequest) (*User, error)

	// List returns every account.
	List(ctx context.Context) ([]*User, error)

	// Get retrieves an account by id.
	Get(ctx context.Context, id uuid.UUID) (*User, error)

	// Update applies a partial update. Store accounts may only touch their
	// own profile fields; subscription fields are super-admin territory.
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest, actor *auth.Principal) (*User, error)

	// EnsureSuperAdmin seeds the initial operator account when no accounts
	// exist yet.
	EnsureSuperAdmin(ctx context.Context, username, password string) error
}

type service struct {
	repo Repository
}

// NewService creates a new account service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Login(ctx context.Context, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, apperr.New(apperr.Validation, "username and password are required")
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.New(apperr.Auth, "invalid credentials")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, apperr.New(apperr.Auth, "invalid credentials")
	}
	return u, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperr.New(apperr.Validation, "username and password are required")
	}
	if req.Role != auth.RoleStore && req.Role != auth.RoleSuperAdmin {
		return nil, apperr.New(apperr.Validation, "role must be %q or %q", auth.RoleStore, auth.RoleSuperAdmin)
	}
	if req.Role == auth.RoleStore && req.StoreName == "" {
		return nil, apperr.New(apperr.Validation, "store_name is required for store accounts")
	}
	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return nil, apperr.New(apperr.Validation, "username %q is already taken", req.Username)
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "hash password", err)
	}

	u := &User{
		ID:                uuid.New(),
		Username:          req.Username,
		PasswordHash:      string(hash),
		Role:              req.Role,
		StoreName:         req.StoreName,
		SubscriptionPrice: req.SubscriptionPrice,
		TelegramChatID:    req.TelegramChatID,
	}
	if req.SubscriptionPrice != nil {
		now := time.Now()
		u.SubscriptionStartedAt = &now
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest, actor *auth.Principal) (*User, error) {
	if actor == nil {
		return nil, apperr.New(apperr.Auth, "authentication required")
	}
	if !actor.IsSuperAdmin() && actor.ID != id {
		return nil, apperr.New(apperr.Forbidden, "cannot update another account")
	}
	subscriptionTouched := req.SubscriptionPrice != nil ||
		req.SubscriptionBalance != nil || req.SubscriptionStartedAt != nil
	if subscriptionTouched && !actor.IsSuperAdmin() {
		return nil, apperr.New(apperr.Forbidden, "subscription fields are managed by the administrator")
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Password != nil {
		if *req.Password == "" {
			return nil, apperr.New(apperr.Validation, "password cannot be empty")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.Wrap(apperr.Storage, "hash password", err)
		}
		u.PasswordHash = string(hash)
	}
	if req.StoreName != nil {
		u.StoreName = *req.StoreName
	}
	if req.SubscriptionPrice != nil {
		u.SubscriptionPrice = req.SubscriptionPrice
		if u.SubscriptionStartedAt == nil {
			now := time.Now()
			u.SubscriptionStartedAt = &now
		}
	}
	if req.SubscriptionBalance != nil {
		u.SubscriptionBalance = *req.SubscriptionBalance
	}
	if req.SubscriptionStartedAt != nil {
		u.SubscriptionStartedAt = req.SubscriptionStartedAt
	}
	if req.TelegramChatID != nil {
		u.TelegramChatID = req.TelegramChatID
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) EnsureSuperAdmin(ctx context.Context, username, password string) error {
	users, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}
	_, err = s.Create(ctx, CreateRequest{
		Username: username,
		Password: password,
		Role:     auth.RoleSuperAdmin,
	})
	return err
}
