package order

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/savdohub/savdo-backend/internal/modules/auth"
)

func newTestServer(t *testing.T, f *fixture) (*httptest.Server, *auth.Tokens) {
	t.Helper()
	tokens := auth.NewTokens("test-secret")
	r := chi.NewRouter()
	r.Use(tokens.Middleware)
	NewHandler(f.orders).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, tokens
}

func TestPlaceOrderOverHTTP(t *testing.T) {
	f := newFixture(t)
	storeID := uuid.New()
	p := f.addProduct(t, &storeID, "Choy", 1500, 30)
	srv, _ := newTestServer(t, f)

	body, _ := json.Marshal(CreateRequest{
		Phone:   "+998901234567",
		Address: "Mirzo Ulugbek 7",
		Items:   []CreateItem{{ProductID: p.ID, Quantity: 2}},
	})
	resp, err := http.Post(srv.URL+"/api/orders", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var o Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&o))
	require.Equal(t, StatusPending, o.Status)
	require.Equal(t, "3000", o.Total.String())
}

func TestListWithoutSessionIsEmptyArray(t *testing.T) {
	f := newFixture(t)
	storeID := uuid.New()
	p := f.addProduct(t, &storeID, "Choy", 1500, 30)
	_, err := f.orders.Create(context.Background(), CreateRequest{
		Phone: "+998", Address: "a",
		Items: []CreateItem{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	srv, _ := newTestServer(t, f)

	resp, err := http.Get(srv.URL + "/api/orders")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Empty(t, got)
}

func TestUpdateStatusOverHTTP(t *testing.T) {
	f := newFixture(t)
	storeID := uuid.New()
	p := f.addProduct(t, &storeID, "Choy", 1500, 30)
	o, err := f.orders.Create(context.Background(), CreateRequest{
		Phone: "+998", Address: "a",
		Items: []CreateItem{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	srv, tokens := newTestServer(t, f)

	token, err := tokens.IssueUser(uuid.New(), auth.RoleSuperAdmin)
	require.NoError(t, err)

	patch := func(status string, bearer string) *http.Response {
		body, _ := json.Marshal(UpdateStatusRequest{Status: status})
		req, err := http.NewRequest(http.MethodPatch, srv.URL+"/api/orders/"+o.ID.String(), bytes.NewReader(body))
		require.NoError(t, err)
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	// No token: the route is guarded.
	resp := patch("processing", "")
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = patch("processing", token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, StatusProcessing, got.Status)

	// An illegal hop comes back as a plain validation error.
	resp = patch("pending", token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var fail struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fail))
	require.NotEmpty(t, fail.Error)
}
