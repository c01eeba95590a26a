package order

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/savdohub/savdo-backend/internal/apperr"
	"github.com/savdohub/savdo-backend/internal/modules/auth"
	"github.com/savdohub/savdo-backend/internal/modules/customer"
	"github.com/savdohub/savdo-backend/internal/modules/product"
)

// Notifier receives best-effort order event notifications. Implementations
// must never block the caller on delivery and have no way to report failure
// back: a store mutation succeeds even when its notification does not.
type Notifier interface {
	OrderPlaced(o *Order)
	OrderStatusChanged(o *Order)
}

// NopNotifier discards every event.
type NopNotifier struct{}

func (NopNotifier) OrderPlaced(*Order)        {}
func (NopNotifier) OrderStatusChanged(*Order) {}

// Service defines the order lifecycle business logic.
type Service interface {
	// Create places an order from cart contents, snapshotting product
	// name/price/unit per line. Stock is NOT decremented.
	Create(ctx context.Context, req CreateRequest) (*Order, error)

	// Get retrieves one order in the viewer's scope.
	Get(ctx context.Context, id uuid.UUID, viewer *auth.Principal) (*Order, error)

	// List returns the orders visible to the viewer: everything for a
	// super-admin, the store-scoped projection for a store, nothing for
	// anyone else.
	List(ctx context.Context, viewer *auth.Principal) ([]*Order, error)

	// UpdateStatus moves an order along the status state machine,
	// rejecting transitions the graph does not allow.
	UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*Order, error)
}

type service struct {
	repo      Repository
	products  product.Repository
	customers customer.Service
	notifier  Notifier
}

// NewService creates a new order service.
func NewService(repo Repository, products product.Repository, customers customer.Service, notifier Notifier) Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &service{repo: repo, products: products, customers: customers, notifier: notifier}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	if req.Phone == "" {
		return nil, apperr.New(apperr.Validation, "phone is required")
	}
	if req.Address == "" {
		return nil, apperr.New(apperr.Validation, "address is required")
	}
	if len(req.Items) == 0 {
		return nil, apperr.New(apperr.Validation, "order must contain at least one item")
	}

	items := make([]Item, 0, len(req.Items))
	total := decimal.Zero
	for _, ci := range req.Items {
		if ci.Quantity <= 0 {
			return nil, apperr.New(apperr.Validation, "quantity must be > 0 for product %s", ci.ProductID)
		}
		p, err := s.products.GetByID(ctx, ci.ProductID)
		if err != nil {
			if apperr.IsNotFound(err) {
				return nil, apperr.New(apperr.Validation, "product %s not found", ci.ProductID)
			}
			return nil, err
		}
		item := Item{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  ci.Quantity,
			UnitPrice: p.Price,
			Unit:      p.Unit,
		}
		items = append(items, item)
		total = total.Add(item.Extension())
	}

	o := &Order{
		ID:      uuid.New(),
		Phone:   req.Phone,
		Address: req.Address,
		Items:   items,
		Total:   total,
		Status:  StatusPending,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	// Record the buyer by phone. The order is already placed, so a failure
	// here is logged and swallowed.
	if _, err := s.customers.EnsureByPhone(ctx, req.Phone, req.Name, req.Address); err != nil {
		log.Printf("record customer for order %s: %v", o.ID, err)
	}

	s.notifier.OrderPlaced(o)
	return o, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID, viewer *auth.Principal) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if viewer != nil && viewer.IsSuperAdmin() {
		return o, nil
	}
	if viewer != nil && viewer.IsStore() {
		owners, err := s.storeOwners(ctx)
		if err != nil {
			return nil, err
		}
		view, ok := scopeOne(o, owners, viewer.ID)
		if !ok {
			return nil, apperr.New(apperr.NotFound, "order not found")
		}
		return view, nil
	}
	return nil, apperr.New(apperr.Auth, "authentication required")
}

func (s *service) List(ctx context.Context, viewer *auth.Principal) ([]*Order, error) {
	if viewer == nil || viewer.Kind != auth.KindUser {
		return []*Order{}, nil
	}
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if viewer.IsSuperAdmin() {
		return orders, nil
	}
	owners, err := s.storeOwners(ctx)
	if err != nil {
		return nil, err
	}
	return ScopeForStore(orders, owners, viewer.ID), nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*Order, error) {
	next := Status(req.Status)
	if !next.Valid() {
		return nil, apperr.New(apperr.Validation, "unknown status %q", req.Status)
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, next) {
		return nil, apperr.New(apperr.Validation, "cannot transition order from %s to %s", o.Status, next)
	}
	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	// Re-read so the response carries the repo's updated_at.
	o, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.OrderStatusChanged(o)
	return o, nil
}

// storeOwners builds the product→store ownership map the projection needs.
func (s *service) storeOwners(ctx context.Context) (map[uuid.UUID]uuid.UUID, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	owners := make(map[uuid.UUID]uuid.UUID, len(products))
	for _, p := range products {
		if p.StoreID != nil {
			owners[p.ID] = *p.StoreID
		}
	}
	return owners, nil
}
