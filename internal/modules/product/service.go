package product

import (
	"context"

	"github.com/google/uuid"

	"github.com/savdohub/savdo-backend/internal/apperr"
	"github.com/savdohub/savdo-backend/internal/modules/auth"
)

// Service defines catalog business logic.
type Service interface {
	// List returns the catalog visible to the viewer: store accounts see
	// their own products, everyone else sees the full catalog. An empty
	// category means no category filter.
	List(ctx context.Context, viewer *auth.Principal, category string) ([]*Product, error)

	// Get retrieves one product.
	Get(ctx context.Context, id uuid.UUID) (*Product, error)

	// Create adds a product. Store accounts always create under their own
	// store id; only a super-admin may create unscoped products or products
	// for another store.
	Create(ctx context.Context, req CreateRequest, actor *auth.Principal) (*Product, error)

	// Update applies a partial update with an owner-or-admin guard.
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest, actor *auth.Principal) (*Product, error)

	// Delete removes a product with an owner-or-admin guard.
	Delete(ctx context.Context, id uuid.UUID, actor *auth.Principal) error
}

type service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, viewer *auth.Principal, category string) ([]*Product, error) {
	var products []*Product
	var err error
	if viewer != nil && viewer.IsStore() {
		products, err = s.repo.ListByStore(ctx, viewer.ID)
	} else {
		products, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	if category == "" {
		return products, nil
	}
	filtered := make([]*Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req CreateRequest, actor *auth.Principal) (*Product, error) {
	if req.Name == "" {
		return nil, apperr.New(apperr.Validation, "name is required")
	}
	if req.Price.IsNegative() {
		return nil, apperr.New(apperr.Validation, "price cannot be negative")
	}
	if req.Stock < 0 {
		return nil, apperr.New(apperr.Validation, "stock cannot be negative")
	}
	unit := req.Unit
	if unit == "" {
		unit = UnitPiece
	}
	if !unit.Valid() {
		return nil, apperr.New(apperr.Validation, "unit must be piece, pack or box")
	}

	p := &Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Unit:        unit,
		Stock:       req.Stock,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}
	switch {
	case actor.IsSuperAdmin():
		p.StoreID = req.StoreID
	case actor.IsStore():
		id := actor.ID
		p.StoreID = &id
	default:
		return nil, apperr.New(apperr.Forbidden, "insufficient role")
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest, actor *auth.Principal) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(p, actor); err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, apperr.New(apperr.Validation, "name cannot be empty")
		}
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, apperr.New(apperr.Validation, "price cannot be negative")
		}
		p.Price = *req.Price
	}
	if req.Unit != nil {
		if !req.Unit.Valid() {
			return nil, apperr.New(apperr.Validation, "unit must be piece, pack or box")
		}
		p.Unit = *req.Unit
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, apperr.New(apperr.Validation, "stock cannot be negative")
		}
		p.Stock = *req.Stock
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, actor *auth.Principal) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(p, actor); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// authorize enforces owner-or-admin on a product mutation.
func (s *service) authorize(p *Product, actor *auth.Principal) error {
	if actor == nil {
		return apperr.New(apperr.Auth, "authentication required")
	}
	if actor.IsSuperAdmin() {
		return nil
	}
	if actor.IsStore() && p.OwnedBy(actor.ID) {
		return nil
	}
	return apperr.New(apperr.Forbidden, "product belongs to another store")
}
