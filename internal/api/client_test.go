package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"qrdine/internal/models"
	"qrdine/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Session, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess, err := session.Load(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	require.NoError(t, sess.SetToken("test-token"))

	client := New(srv.URL, 5*time.Second, sess, zap.NewNop())
	return client, sess, srv
}

func TestBranchScopedQueryComposition(t *testing.T) {
	var gotURLs []string
	client, sess, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURLs = append(gotURLs, r.URL.String())
		json.NewEncoder(w).Encode([]models.MenuItem{})
	}))

	ctx := context.Background()

	// No branch selected: the parameter is omitted entirely.
	_, err := client.ListMenu(ctx, MenuFilter{})
	require.NoError(t, err)
	assert.NotContains(t, gotURLs[0], "branch_id")

	// Branch selected: appended to every list fetch, composed with other
	// query parameters.
	require.NoError(t, sess.SetBranch(3))
	_, err = client.ListMenu(ctx, MenuFilter{Category: "mains"})
	require.NoError(t, err)
	assert.Contains(t, gotURLs[1], "branch_id=3")
	assert.Contains(t, gotURLs[1], "category=mains")

	_, err = client.ListOrders(ctx, OrderFilter{})
	require.NoError(t, err)
	assert.Contains(t, gotURLs[2], "branch_id=3")

	// Cleared again: parameter gone.
	require.NoError(t, sess.ClearBranch())
	_, err = client.ListMenu(ctx, MenuFilter{})
	require.NoError(t, err)
	assert.NotContains(t, gotURLs[3], "branch_id")
}

func TestBearerTokenHeader(t *testing.T) {
	var auth string
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]models.Table{})
	}))

	_, err := client.ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", auth)
}

func TestUnauthorizedIsFatalExactlyOnce(t *testing.T) {
	client, sess, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	}))

	var logouts int
	sess.OnLogout(func() { logouts++ })

	ctx := context.Background()
	_, err1 := client.ListMenu(ctx, MenuFilter{})
	_, err2 := client.ListTables(ctx)

	assert.ErrorIs(t, err1, ErrUnauthorized)
	// The second call goes out without a token; its rejection is an ordinary
	// error, not another teardown.
	var apiErr *APIError
	assert.ErrorAs(t, err2, &apiErr)
	assert.Equal(t, 1, logouts, "multiple failing calls must not loop the logout")
	assert.False(t, sess.Authenticated())
}

func TestLoginRejectionIsNotFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	}))
	t.Cleanup(srv.Close)

	sess, err := session.Load(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	var logouts int
	sess.OnLogout(func() { logouts++ })

	client := New(srv.URL, 5*time.Second, sess, zap.NewNop())

	_, err = client.Login(context.Background(), "demo@qrdine.dev", "wrong-pass")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid credentials", apiErr.Message)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 0, logouts, "a rejected login must not fire the session teardown")
}

func TestServerMessageSurfacesVerbatim(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "group is still assigned to tables"})
	}))

	err := client.DeleteTableGroup(context.Background(), 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "group is still assigned to tables", apiErr.Message)
	assert.Equal(t, "group is still assigned to tables", err.Error())
}

func TestTransportErrorWrapping(t *testing.T) {
	client, _, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := client.ListMenu(context.Background(), MenuFilter{})
	var te *TransportError
	assert.True(t, errors.As(err, &te))
}

func TestPlaceOrderPayload(t *testing.T) {
	var got PlaceOrderRequest
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(models.Order{ID: 42, OrderStatus: models.OrderPending})
	}))

	order, err := client.PlaceOrder(context.Background(), PlaceOrderRequest{
		TableNumber:   4,
		Currency:      "INR",
		PaymentMethod: "cash",
		Total:         200,
		Items:         []PlaceOrderItem{{MenuItemID: 1, ItemName: "Naan", Quantity: 2, PriceINR: 100}},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(42), order.ID)
	assert.InDelta(t, 200, got.Total, 0.001)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestQRPayload(t *testing.T) {
	link := QRPayload("https://order.example.com", models.Table{TableNumber: 7, BranchID: 2}, 99)
	assert.Contains(t, link, "table=7")
	assert.Contains(t, link, "branch_id=2")
	assert.Contains(t, link, "companyId=99")
}
