package customer

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/savdohub/savdo-backend/internal/apperr"
)

// Service defines customer business logic.
type Service interface {
	// Login checks the phone/password pair. Records without a claimed
	// credential cannot log in.
	Login(ctx context.Context, phone, password string) (*Customer, error)

	// RegisterOrUpdate upserts a customer by phone. The returned flag is
	// true when a new record was created.
	RegisterOrUpdate(ctx context.Context, req RegisterRequest) (*Customer, bool, error)

	// EnsureByPhone returns the customer with the given phone, creating a
	// credential-less record if none exists. Used by checkout.
	EnsureByPhone(ctx context.Context, phone, name, address string) (*Customer, error)

	// List returns every customer.
	List(ctx context.Context) ([]*Customer, error)
}

type service struct {
	repo Repository
}

// NewService creates a new customer service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Login(ctx context.Context, phone, password string) (*Customer, error) {
	if phone == "" || password == "" {
		return nil, apperr.New(apperr.Validation, "phone and password are required")
	}
	c, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.New(apperr.Auth, "invalid credentials")
		}
		return nil, err
	}
	if !c.HasCredential() {
		return nil, apperr.New(apperr.Auth, "invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) != nil {
		return nil, apperr.New(apperr.Auth, "invalid credentials")
	}
	return c, nil
}

func (s *service) RegisterOrUpdate(ctx context.Context, req RegisterRequest) (*Customer, bool, error) {
	if req.Phone == "" {
		return nil, false, apperr.New(apperr.Validation, "phone is required")
	}

	existing, err := s.repo.GetByPhone(ctx, req.Phone)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, false, err
	}

	if existing == nil {
		c := &Customer{
			ID:      uuid.New(),
			Phone:   req.Phone,
			Name:    req.Name,
			Email:   req.Email,
			Address: req.Address,
		}
		if req.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, false, apperr.Wrap(apperr.Storage, "hash password", err)
			}
			c.PasswordHash = string(hash)
		}
		if err := s.repo.Create(ctx, c); err != nil {
			return nil, false, err
		}
		return c, true, nil
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Email != "" {
		existing.Email = req.Email
	}
	if req.Address != "" {
		existing.Address = req.Address
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, false, apperr.Wrap(apperr.Storage, "hash password", err)
		}
		existing.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *service) EnsureByPhone(ctx context.Context, phone, name, address string) (*Customer, error) {
	c, _, err := s.RegisterOrUpdate(ctx, RegisterRequest{Phone: phone, Name: name, Address: address})
	return c, err
}

func (s *service) List(ctx context.Context) ([]*Customer, error) {
	return s.repo.List(ctx)
}
