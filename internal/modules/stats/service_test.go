package stats

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/savdohub/savdo-backend/internal/modules/auth"
	"github.com/savdohub/savdo-backend/internal/modules/order"
	"github.com/savdohub/savdo-backend/internal/modules/product"
)

// The fakes return a pre-scoped view, standing in for the order and product
// services after viewer scoping has been applied.

type fakeOrders struct {
	order.Service
	list []*order.Order
}

func (f *fakeOrders) List(ctx context.Context, viewer *auth.Principal) ([]*order.Order, error) {
	return f.list, nil
}

type fakeProducts struct {
	product.Service
	list []*product.Product
}

func (f *fakeProducts) List(ctx context.Context, viewer *auth.Principal, category string) ([]*product.Product, error) {
	return f.list, nil
}

func item(id uuid.UUID, name string, qty int, price int64) order.Item {
	return order.Item{
		ProductID: id,
		Name:      name,
		Quantity:  qty,
		UnitPrice: decimal.NewFromInt(price),
		Unit:      product.UnitPiece,
	}
}

func completed(created time.Time, items ...order.Item) *order.Order {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Extension())
	}
	return &order.Order{
		ID:        uuid.New(),
		Status:    order.StatusCompleted,
		Items:     items,
		Total:     total,
		CreatedAt: created,
	}
}

func TestSummary(t *testing.T) {
	now := date(2026, time.August, 29, 12)
	p1 := uuid.New()
	p2 := uuid.New()

	orders := []*order.Order{
		completed(now, item(p1, "P1", 2, 1000), item(p2, "P2", 4, 500)),
		{ID: uuid.New(), Status: order.StatusPending, Total: decimal.NewFromInt(9999), CreatedAt: now},
		{ID: uuid.New(), Status: order.StatusProcessing, Total: decimal.NewFromInt(100), CreatedAt: now},
		{ID: uuid.New(), Status: order.StatusCancelled, Total: decimal.NewFromInt(5000), CreatedAt: now},
	}
	products := []*product.Product{
		{ID: p1, Name: "P1", Stock: 3},
		{ID: p2, Name: "P2", Stock: 50},
	}

	svc := NewService(&fakeOrders{list: orders}, &fakeProducts{list: products}, func() time.Time { return now })
	sum, err := svc.Summary(context.Background(), nil)
	require.NoError(t, err)

	require.Equal(t, OrderCounts{Total: 4, Pending: 1, Processing: 1, Completed: 1, Cancelled: 1}, sum.Orders)
	// Only the completed order counts toward revenue.
	require.Equal(t, "4000", sum.Revenue.String())
	require.Equal(t, ProductCounts{Total: 2, LowStock: 1}, sum.Products)
}

func TestSalesRanking(t *testing.T) {
	// Saturday; the week starts Monday the 24th, the month on the 1st.
	now := date(2026, time.August, 29, 12)
	midMonth := date(2026, time.August, 10, 12)
	lastMonth := date(2026, time.July, 10, 12)
	p1 := uuid.New()
	p2 := uuid.New()

	orders := []*order.Order{
		// This week: P2 outsells P1 by quantity, P1 wins on revenue.
		completed(now, item(p1, "P1", 2, 1000), item(p2, "P2", 4, 400)),
		// Earlier this month, before the week started.
		completed(midMonth, item(p1, "P1", 5, 1000)),
		// Old order: counts toward totals only.
		completed(lastMonth, item(p1, "P1", 10, 1000)),
		// Pending orders never count.
		{ID: uuid.New(), Status: order.StatusPending, Items: []order.Item{item(p2, "P2", 99, 400)}, CreatedAt: now},
	}

	svc := NewService(&fakeOrders{list: orders}, &fakeProducts{}, func() time.Time { return now })
	r, err := svc.Sales(context.Background(), nil)
	require.NoError(t, err)

	// The August 10th order stays out of the week figures entirely.
	require.Len(t, r.ByWeekQuantity, 2)
	require.Equal(t, p2, r.ByWeekQuantity[0].ProductID)
	require.Equal(t, 4, r.ByWeekQuantity[0].WeekQuantity)
	require.Equal(t, p1, r.ByWeekQuantity[1].ProductID)
	require.Equal(t, 2, r.ByWeekQuantity[1].WeekQuantity)

	require.Equal(t, p1, r.ByWeekRevenue[0].ProductID)
	require.Equal(t, "2000", r.ByWeekRevenue[0].WeekRevenue.String())

	// But it does count toward the month, and the July order only toward the
	// running totals.
	require.Equal(t, p1, r.ByMonthQuantity[0].ProductID)
	require.Equal(t, 7, r.ByMonthQuantity[0].MonthQuantity)
	require.Equal(t, "7000", r.ByMonthRevenue[0].MonthRevenue.String())
	require.Equal(t, 17, r.ByMonthQuantity[0].TotalQuantity)
	require.Equal(t, "17000", r.ByMonthQuantity[0].TotalRevenue.String())
}

func TestSalesTiesKeepFirstSeenOrder(t *testing.T) {
	now := date(2026, time.August, 29, 12)
	ids := make([]uuid.UUID, 3)
	items := make([]order.Item, 3)
	for i := range ids {
		ids[i] = uuid.New()
		items[i] = item(ids[i], "same", 1, 100)
	}

	svc := NewService(&fakeOrders{list: []*order.Order{completed(now, items...)}}, &fakeProducts{}, func() time.Time { return now })
	r, err := svc.Sales(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, r.ByWeekQuantity, 3)
	for i, want := range ids {
		require.Equal(t, want, r.ByWeekQuantity[i].ProductID)
	}
}

func TestSalesCapsAtTen(t *testing.T) {
	now := date(2026, time.August, 29, 12)
	var items []order.Item
	for i := 0; i < 15; i++ {
		items = append(items, item(uuid.New(), "p", i+1, 100))
	}

	svc := NewService(&fakeOrders{list: []*order.Order{completed(now, items...)}}, &fakeProducts{}, func() time.Time { return now })
	r, err := svc.Sales(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, r.ByWeekQuantity, 10)
	// Descending by quantity: 15 down to 6.
	require.Equal(t, 15, r.ByWeekQuantity[0].WeekQuantity)
	require.Equal(t, 6, r.ByWeekQuantity[9].WeekQuantity)
}
