package product

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/savdohub/savdo-backend/internal/apperr"
	"github.com/savdohub/savdo-backend/internal/storage/jsonstore"
)

type jsonRepository struct {
	col *jsonstore.Collection[Product]
}

// NewJSONRepository creates a flat-file product repository at path. The
// Product model carries no secrets, so it is persisted as-is.
func NewJSONRepository(path string) Repository {
	return &jsonRepository{col: jsonstore.New[Product](path)}
}

func (r *jsonRepository) List(ctx context.Context) ([]*Product, error) {
	return r.list(func(*Product) bool { return true })
}

func (r *jsonRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*Product, error) {
	return r.list(func(p *Product) bool { return p.OwnedBy(storeID) })
}

func (r *jsonRepository) list(match func(*Product) bool) ([]*Product, error) {
	recs, err := r.col.Load()
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "read products", err)
	}
	products := make([]*Product, 0, len(recs))
	for i := range recs {
		p := recs[i]
		if match(&p) {
			products = append(products, &p)
		}
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

func (r *jsonRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	recs, err := r.col.Load()
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "read products", err)
	}
	for i := range recs {
		if recs[i].ID == id {
			p := recs[i]
			return &p, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "product not found")
}

func (r *jsonRepository) Create(ctx context.Context, p *Product) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	err := r.col.Mutate(func(recs []Product) ([]Product, error) {
		return append(recs, *p), nil
	})
	if err != nil {
		return apperr.Wrap(apperr.Storage, "write products", err)
	}
	return nil
}

func (r *jsonRepository) Update(ctx context.Context, p *Product) error {
	p.UpdatedAt = time.Now()
	return r.col.Mutate(func(recs []Product) ([]Product, error) {
		for i := range recs {
			if recs[i].ID == p.ID {
				recs[i] = *p
				return recs, nil
			}
		}
		return nil, apperr.New(apperr.NotFound, "product not found")
	})
}

func (r *jsonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.col.Mutate(func(recs []Product) ([]Product, error) {
		for i := range recs {
			if recs[i].ID == id {
				return append(recs[:i], recs[i+1:]...), nil
			}
		}
		return nil, apperr.New(apperr.NotFound, "product not found")
	})
}
