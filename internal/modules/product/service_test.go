package product

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/savdohub/savdo-backend/internal/apperr"
	"github.com/savdohub/savdo-backend/internal/modules/auth"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	return NewService(NewJSONRepository(filepath.Join(t.TempDir(), "products.json")))
}

func storePrincipal(id uuid.UUID) *auth.Principal {
	return &auth.Principal{ID: id, Kind: auth.KindUser, Role: auth.RoleStore}
}

func adminPrincipal() *auth.Principal {
	return &auth.Principal{ID: uuid.New(), Kind: auth.KindUser, Role: auth.RoleSuperAdmin}
}

func TestCreateStampsStoreID(t *testing.T) {
	svc := newTestService(t)
	storeID := uuid.New()

	p, err := svc.Create(context.Background(), CreateRequest{
		Name:  "Olma",
		Price: decimal.NewFromInt(1000),
		Unit:  UnitPiece,
		Stock: 5,
	}, storePrincipal(storeID))
	require.NoError(t, err)
	require.NotNil(t, p.StoreID)
	require.Equal(t, storeID, *p.StoreID)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)
	actor := adminPrincipal()

	tests := []struct {
		name string
		req  CreateRequest
	}{
		{"missing name", CreateRequest{Price: decimal.NewFromInt(10)}},
		{"negative price", CreateRequest{Name: "x", Price: decimal.NewFromInt(-1)}},
		{"negative stock", CreateRequest{Name: "x", Stock: -1}},
		{"bad unit", CreateRequest{Name: "x", Unit: Unit("dozen")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req, actor)
			require.Error(t, err)
			require.Equal(t, apperr.Validation, apperr.KindOf(err))
		})
	}
}

func TestUpdateOwnerOrAdminGuard(t *testing.T) {
	svc := newTestService(t)
	owner := uuid.New()

	p, err := svc.Create(context.Background(), CreateRequest{
		Name:  "Non",
		Price: decimal.NewFromInt(300),
	}, storePrincipal(owner))
	require.NoError(t, err)

	name := "Non (yangi)"

	// Another store cannot touch the product.
	_, err = svc.Update(context.Background(), p.ID, UpdateRequest{Name: &name}, storePrincipal(uuid.New()))
	require.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	// The owner can.
	got, err := svc.Update(context.Background(), p.ID, UpdateRequest{Name: &name}, storePrincipal(owner))
	require.NoError(t, err)
	require.Equal(t, name, got.Name)

	// So can the super-admin.
	stock := 42
	got, err = svc.Update(context.Background(), p.ID, UpdateRequest{Stock: &stock}, adminPrincipal())
	require.NoError(t, err)
	require.Equal(t, 42, got.Stock)
}

func TestDeleteGuardAndNotFound(t *testing.T) {
	svc := newTestService(t)
	owner := uuid.New()

	p, err := svc.Create(context.Background(), CreateRequest{Name: "Sut", Price: decimal.NewFromInt(650)}, storePrincipal(owner))
	require.NoError(t, err)

	err = svc.Delete(context.Background(), p.ID, storePrincipal(uuid.New()))
	require.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	require.NoError(t, svc.Delete(context.Background(), p.ID, storePrincipal(owner)))

	_, err = svc.Get(context.Background(), p.ID)
	require.True(t, apperr.IsNotFound(err))
}

func TestListScopesToStore(t *testing.T) {
	svc := newTestService(t)
	storeA := uuid.New()
	storeB := uuid.New()

	_, err := svc.Create(context.Background(), CreateRequest{Name: "A1", Price: decimal.NewFromInt(10)}, storePrincipal(storeA))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateRequest{Name: "B1", Price: decimal.NewFromInt(10)}, storePrincipal(storeB))
	require.NoError(t, err)

	mine, err := svc.List(context.Background(), storePrincipal(storeA), "")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "A1", mine[0].Name)

	// Anonymous and admin callers see the whole catalog.
	all, err := svc.List(context.Background(), nil, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestLowStockThreshold(t *testing.T) {
	nine := Product{Stock: 9}
	ten := Product{Stock: 10}
	require.True(t, nine.IsLowStock())
	require.False(t, ten.IsLowStock())
}
