package customer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/savdohub/savdo-backend/internal/apperr"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	return NewService(NewJSONRepository(filepath.Join(t.TempDir(), "customers.json")))
}

func TestRegisterThenLogin(t *testing.T) {
	svc := newTestService(t)

	c, created, err := svc.RegisterOrUpdate(context.Background(), RegisterRequest{
		Phone:    "+998901234567",
		Name:     "Aziza",
		Password: "secret",
	})
	require.NoError(t, err)
	require.True(t, created)
	require.True(t, c.HasCredential())

	got, err := svc.Login(context.Background(), "+998901234567", "secret")
	require.NoError(t, err)
	require.Equal(t, c.ID, got.ID)

	_, err = svc.Login(context.Background(), "+998901234567", "wrong")
	require.Equal(t, apperr.Auth, apperr.KindOf(err))
}

func TestCheckoutRecordCanBeClaimedLater(t *testing.T) {
	svc := newTestService(t)

	// Checkout drops a credential-less record.
	c, err := svc.EnsureByPhone(context.Background(), "+998905556677", "Aziza", "Sergeli 12")
	require.NoError(t, err)
	require.False(t, c.HasCredential())

	// Logging in is impossible until the record is claimed, whatever the
	// password.
	_, err = svc.Login(context.Background(), "+998905556677", "")
	require.Equal(t, apperr.Validation, apperr.KindOf(err))
	_, err = svc.Login(context.Background(), "+998905556677", "anything")
	require.Equal(t, apperr.Auth, apperr.KindOf(err))

	// Registration with the same phone claims the record instead of creating
	// a duplicate.
	claimed, created, err := svc.RegisterOrUpdate(context.Background(), RegisterRequest{
		Phone:    "+998905556677",
		Password: "secret",
	})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, c.ID, claimed.ID)
	require.Equal(t, "Aziza", claimed.Name)

	got, err := svc.Login(context.Background(), "+998905556677", "secret")
	require.NoError(t, err)
	require.Equal(t, c.ID, got.ID)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestRegisterUpdateKeepsUntouchedFields(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.RegisterOrUpdate(context.Background(), RegisterRequest{
		Phone: "+998900000001", Name: "Bobur", Address: "Chilonzor 5",
	})
	require.NoError(t, err)

	c, created, err := svc.RegisterOrUpdate(context.Background(), RegisterRequest{
		Phone: "+998900000001", Email: "bobur@example.com",
	})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, "Bobur", c.Name)
	require.Equal(t, "Chilonzor 5", c.Address)
	require.Equal(t, "bobur@example.com", c.Email)
}

func TestRegisterRequiresPhone(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.RegisterOrUpdate(context.Background(), RegisterRequest{Name: "x"})
	require.Equal(t, apperr.Validation, apperr.KindOf(err))
}
