package order

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/savdohub/savdo-backend/internal/apperr"
	"github.com/savdohub/savdo-backend/internal/modules/auth"
	"github.com/savdohub/savdo-backend/internal/modules/customer"
	"github.com/savdohub/savdo-backend/internal/modules/product"
)

type fixture struct {
	orders    Service
	products  product.Repository
	customers customer.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	productRepo := product.NewJSONRepository(filepath.Join(dir, "products.json"))
	customerRepo := customer.NewJSONRepository(filepath.Join(dir, "customers.json"))
	orderRepo := NewJSONRepository(filepath.Join(dir, "orders.json"))
	svc := NewService(orderRepo, productRepo, customer.NewService(customerRepo), nil)
	return &fixture{orders: svc, products: productRepo, customers: customerRepo}
}

func (f *fixture) addProduct(t *testing.T, storeID *uuid.UUID, name string, price int64, stock int) *product.Product {
	t.Helper()
	p := &product.Product{
		ID:      uuid.New(),
		StoreID: storeID,
		Name:    name,
		Price:   decimal.NewFromInt(price),
		Unit:    product.UnitPiece,
		Stock:   stock,
	}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func admin() *auth.Principal {
	return &auth.Principal{ID: uuid.New(), Kind: auth.KindUser, Role: auth.RoleSuperAdmin}
}

func store(id uuid.UUID) *auth.Principal {
	return &auth.Principal{ID: id, Kind: auth.KindUser, Role: auth.RoleStore}
}

func TestCreateComputesTotalFromSnapshots(t *testing.T) {
	f := newFixture(t)
	storeID := uuid.New()
	p1 := f.addProduct(t, &storeID, "P1", 1000, 5)
	p2 := f.addProduct(t, &storeID, "P2", 500, 20)

	o, err := f.orders.Create(context.Background(), CreateRequest{
		Phone:   "+998901112233",
		Address: "Chilonzor 5",
		Items: []CreateItem{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: p2.ID, Quantity: 4},
		},
	})
	require.NoError(t, err)
	require.Equal(t, StatusPending, o.Status)
	require.Equal(t, "4000", o.Total.String())
	require.Equal(t, "P1", o.Items[0].Name)
	require.Equal(t, "1000", o.Items[0].UnitPrice.String())

	// Placing the order never touches stock.
	got, err := f.products.GetByID(context.Background(), p1.ID)
	require.NoError(t, err)
	require.Equal(t, 5, got.Stock)
}

func TestSnapshotsSurviveProductEdits(t *testing.T) {
	f := newFixture(t)
	storeID := uuid.New()
	p := f.addProduct(t, &storeID, "Non", 300, 10)

	o, err := f.orders.Create(context.Background(), CreateRequest{
		Phone:   "+998900000001",
		Address: "Yunusobod 19",
		Items:   []CreateItem{{ProductID: p.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, "900", o.Total.String())

	// Reprice and rename the product afterwards.
	p.Name = "Non (premium)"
	p.Price = decimal.NewFromInt(999)
	require.NoError(t, f.products.Update(context.Background(), p))

	got, err := f.orders.Get(context.Background(), o.ID, admin())
	require.NoError(t, err)
	require.Equal(t, "Non", got.Items[0].Name)
	require.Equal(t, "300", got.Items[0].UnitPrice.String())
	require.Equal(t, "900", got.Total.String())
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	storeID := uuid.New()
	p := f.addProduct(t, &storeID, "X", 100, 1)

	tests := []struct {
		name string
		req  CreateRequest
	}{
		{"missing phone", CreateRequest{Address: "a", Items: []CreateItem{{ProductID: p.ID, Quantity: 1}}}},
		{"missing address", CreateRequest{Phone: "+998", Items: []CreateItem{{ProductID: p.ID, Quantity: 1}}}},
		{"empty items", CreateRequest{Phone: "+998", Address: "a"}},
		{"zero quantity", CreateRequest{Phone: "+998", Address: "a", Items: []CreateItem{{ProductID: p.ID, Quantity: 0}}}},
		{"unknown product", CreateRequest{Phone: "+998", Address: "a", Items: []CreateItem{{ProductID: uuid.New(), Quantity: 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.orders.Create(context.Background(), tt.req)
			require.Error(t, err)
			require.Equal(t, apperr.Validation, apperr.KindOf(err))
		})
	}
}

func TestCheckoutRecordsCustomerByPhone(t *testing.T) {
	f := newFixture(t)
	storeID := uuid.New()
	p := f.addProduct(t, &storeID, "X", 100, 1)

	_, err := f.orders.Create(context.Background(), CreateRequest{
		Phone:   "+998905556677",
		Name:    "Aziza",
		Address: "Sergeli 12",
		Items:   []CreateItem{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	c, err := f.customers.GetByPhone(context.Background(), "+998905556677")
	require.NoError(t, err)
	require.Equal(t, "Aziza", c.Name)
	require.False(t, c.HasCredential())
}

func TestStatusTransitions(t *testing.T) {
	f := newFixture(t)
	storeID := uuid.New()
	p := f.addProduct(t, &storeID, "X", 100, 1)

	o, err := f.orders.Create(context.Background(), CreateRequest{
		Phone: "+998", Address: "a",
		Items: []CreateItem{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// pending → completed skips a state and is rejected.
	_, err = f.orders.UpdateStatus(context.Background(), o.ID, UpdateStatusRequest{Status: "completed"})
	require.Equal(t, apperr.Validation, apperr.KindOf(err))

	// Unknown status values are rejected outright.
	_, err = f.orders.UpdateStatus(context.Background(), o.ID, UpdateStatusRequest{Status: "shipped"})
	require.Equal(t, apperr.Validation, apperr.KindOf(err))

	o, err = f.orders.UpdateStatus(context.Background(), o.ID, UpdateStatusRequest{Status: "processing"})
	require.NoError(t, err)
	o, err = f.orders.UpdateStatus(context.Background(), o.ID, UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, o.Status)

	// Completed is terminal.
	for _, next := range []string{"pending", "processing", "cancelled"} {
		_, err = f.orders.UpdateStatus(context.Background(), o.ID, UpdateStatusRequest{Status: next})
		require.Error(t, err, "completed → %s must fail", next)
	}
}

func TestUpdateStatusReturnsPersistedRecord(t *testing.T) {
	f := newFixture(t)
	storeID := uuid.New()
	p := f.addProduct(t, &storeID, "X", 100, 1)

	o, err := f.orders.Create(context.Background(), CreateRequest{
		Phone: "+998", Address: "a",
		Items: []CreateItem{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	got, err := f.orders.UpdateStatus(context.Background(), o.ID, UpdateStatusRequest{Status: "processing"})
	require.NoError(t, err)
	require.Equal(t, StatusProcessing, got.Status)
	require.True(t, got.UpdatedAt.After(o.UpdatedAt))

	stored, err := f.orders.Get(context.Background(), o.ID, admin())
	require.NoError(t, err)
	require.Equal(t, stored.UpdatedAt, got.UpdatedAt)
}

func TestCancelIsTerminal(t *testing.T) {
	f := newFixture(t)
	storeID := uuid.New()
	p := f.addProduct(t, &storeID, "X", 100, 1)

	o, err := f.orders.Create(context.Background(), CreateRequest{
		Phone: "+998", Address: "a",
		Items: []CreateItem{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	o, err = f.orders.UpdateStatus(context.Background(), o.ID, UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, o.Status)

	_, err = f.orders.UpdateStatus(context.Background(), o.ID, UpdateStatusRequest{Status: "processing"})
	require.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestListScoping(t *testing.T) {
	f := newFixture(t)
	storeA := uuid.New()
	storeB := uuid.New()
	pa := f.addProduct(t, &storeA, "A", 1000, 5)
	pb := f.addProduct(t, &storeB, "B", 500, 5)

	_, err := f.orders.Create(context.Background(), CreateRequest{
		Phone: "+998", Address: "a",
		Items: []CreateItem{
			{ProductID: pa.ID, Quantity: 2},
			{ProductID: pb.ID, Quantity: 4},
		},
	})
	require.NoError(t, err)

	// No session: nothing.
	none, err := f.orders.List(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, none)

	// Super-admin: everything, untouched.
	all, err := f.orders.List(context.Background(), admin())
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Len(t, all[0].Items, 2)
	require.Equal(t, "4000", all[0].Total.String())

	// Store A: its slice with a recomputed subtotal.
	mine, err := f.orders.List(context.Background(), store(storeA))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Len(t, mine[0].Items, 1)
	require.Equal(t, "2000", mine[0].Total.String())

	// Store with no involvement: the scoped Get reports not found.
	other := uuid.New()
	_, err = f.orders.Get(context.Background(), all[0].ID, store(other))
	require.True(t, apperr.IsNotFound(err))
}
