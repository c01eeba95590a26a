package stats

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/savdohub/savdo-backend/internal/modules/auth"
	"github.com/savdohub/savdo-backend/internal/modules/order"
	"github.com/savdohub/savdo-backend/internal/modules/product"
)

const rankingSize = 10

// Service computes store-scoped statistics. Both operations run over the
// viewer's scoped order and product sets, so a store sees only its own
// slice while the super-admin sees platform-wide figures.
type Service interface {
	Summary(ctx context.Context, viewer *auth.Principal) (*Summary, error)
	Sales(ctx context.Context, viewer *auth.Principal) (*Ranking, error)
}

type service struct {
	orders   order.Service
	products product.Service
	now      func() time.Time
}

// NewService creates a stats service. now is the aggregation clock; pass nil
// for time.Now.
func NewService(orders order.Service, products product.Service, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{orders: orders, products: products, now: now}
}

func (s *service) Summary(ctx context.Context, viewer *auth.Principal) (*Summary, error) {
	orders, err := s.orders.List(ctx, viewer)
	if err != nil {
		return nil, err
	}
	products, err := s.products.List(ctx, viewer, "")
	if err != nil {
		return nil, err
	}

	sum := &Summary{Revenue: decimal.Zero}
	for _, o := range orders {
		sum.Orders.Total++
		switch o.Status {
		case order.StatusPending:
			sum.Orders.Pending++
		case order.StatusProcessing:
			sum.Orders.Processing++
		case order.StatusCompleted:
			sum.Orders.Completed++
			sum.Revenue = sum.Revenue.Add(o.Total)
		case order.StatusCancelled:
			sum.Orders.Cancelled++
		}
	}
	for _, p := range products {
		sum.Products.Total++
		if p.IsLowStock() {
			sum.Products.LowStock++
		}
	}
	return sum, nil
}

func (s *service) Sales(ctx context.Context, viewer *auth.Principal) (*Ranking, error) {
	orders, err := s.orders.List(ctx, viewer)
	if err != nil {
		return nil, err
	}

	now := s.now()
	wkStart := weekStart(now)
	moStart := monthStart(now)

	// Accumulate per product, remembering first-seen order so ranking ties
	// stay deterministic.
	byProduct := make(map[uuid.UUID]*ProductSales)
	var seen []*ProductSales
	for _, o := range orders {
		if o.Status != order.StatusCompleted {
			continue
		}
		for _, it := range o.Items {
			ps, ok := byProduct[it.ProductID]
			if !ok {
				ps = &ProductSales{
					ProductID:    it.ProductID,
					Name:         it.Name,
					TotalRevenue: decimal.Zero,
					WeekRevenue:  decimal.Zero,
					MonthRevenue: decimal.Zero,
				}
				byProduct[it.ProductID] = ps
				seen = append(seen, ps)
			}
			ext := it.Extension()
			ps.TotalQuantity += it.Quantity
			ps.TotalRevenue = ps.TotalRevenue.Add(ext)
			if inWindow(o.CreatedAt, wkStart) {
				ps.WeekQuantity += it.Quantity
				ps.WeekRevenue = ps.WeekRevenue.Add(ext)
			}
			if inWindow(o.CreatedAt, moStart) {
				ps.MonthQuantity += it.Quantity
				ps.MonthRevenue = ps.MonthRevenue.Add(ext)
			}
		}
	}

	return &Ranking{
		ByWeekQuantity: top(seen, func(a, b *ProductSales) bool {
			return a.WeekQuantity > b.WeekQuantity
		}),
		ByWeekRevenue: top(seen, func(a, b *ProductSales) bool {
			return a.WeekRevenue.GreaterThan(b.WeekRevenue)
		}),
		ByMonthQuantity: top(seen, func(a, b *ProductSales) bool {
			return a.MonthQuantity > b.MonthQuantity
		}),
		ByMonthRevenue: top(seen, func(a, b *ProductSales) bool {
			return a.MonthRevenue.GreaterThan(b.MonthRevenue)
		}),
	}, nil
}

// top returns the first rankingSize entries of sales under a stable
// descending sort, leaving the input slice untouched.
func top(sales []*ProductSales, less func(a, b *ProductSales) bool) []*ProductSales {
	ranked := make([]*ProductSales, len(sales))
	copy(ranked, sales)
	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })
	if len(ranked) > rankingSize {
		ranked = ranked[:rankingSize]
	}
	if ranked == nil {
		ranked = []*ProductSales{}
	}
	return ranked
}
