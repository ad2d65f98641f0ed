package sandbox

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"qrdine/internal/api"
	"qrdine/internal/models"
	"qrdine/internal/orderfeed"
	"qrdine/internal/realtime"
	"qrdine/internal/session"
)

func startSandbox(t *testing.T) (*api.Client, *session.Session, string) {
	t.Helper()

	srv := NewServer("test-secret", zap.NewNop())
	email, password, err := srv.Seed()
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	sess, err := session.Load(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	client := api.New(ts.URL, 5*time.Second, sess, zap.NewNop())
	_, err = client.Login(context.Background(), email, password)
	require.NoError(t, err)

	return client, sess, ts.URL
}

func placeSeedOrder(t *testing.T, client *api.Client, table int) *models.Order {
	t.Helper()
	order, err := client.PlaceOrder(context.Background(), api.PlaceOrderRequest{
		TableNumber:   table,
		Currency:      "INR",
		PaymentMethod: "cash",
		Total:         120,
		Items: []api.PlaceOrderItem{
			{MenuItemID: 1, ItemName: "Garlic Naan", Quantity: 2, PriceINR: 60, PriceUSD: 0.9},
		},
	})
	require.NoError(t, err)
	return order
}

func TestLoginAndSeededMenu(t *testing.T) {
	client, sess, _ := startSandbox(t)

	assert.True(t, sess.Authenticated())
	require.NotNil(t, sess.User())
	assert.Equal(t, "Demo Owner", sess.User().Name)

	items, err := client.ListMenu(context.Background(), api.MenuFilter{})
	require.NoError(t, err)
	assert.Len(t, items, 4)

	available, err := client.ListMenu(context.Background(), api.MenuFilter{AvailableOnly: true})
	require.NoError(t, err)
	assert.Len(t, available, 3)
}

func TestOrderLifecycleOverSocket(t *testing.T) {
	client, sess, baseURL := startSandbox(t)
	ctx := context.Background()

	feed := orderfeed.New(0)
	newOrders := make(chan models.Order, 4)
	patches := make(chan models.OrderStatusPatch, 4)

	ch, err := realtime.Dial(ctx, baseURL, sess.Token(), realtime.Handlers{
		NewOrder: func(o models.Order) {
			feed.ApplyNew(o)
			newOrders <- o
		},
		OrderStatusUpdated: func(p models.OrderStatusPatch) {
			feed.ApplyStatusPatch(p)
			patches <- p
		},
	}, zap.NewNop())
	require.NoError(t, err)
	defer ch.Close()

	placed := placeSeedOrder(t, client, 2)
	assert.Equal(t, models.OrderPending, placed.OrderStatus)

	select {
	case got := <-newOrders:
		assert.Equal(t, placed.ID, got.ID)
	case <-time.After(3 * time.Second):
		t.Fatal("new-order event never arrived")
	}

	// Walk the order forward; each confirmed step echoes as a patch.
	for _, next := range []models.OrderStatus{models.OrderPreparing, models.OrderReady, models.OrderDelivered} {
		_, err := client.UpdateOrderStatus(ctx, placed.ID, next)
		require.NoError(t, err)

		select {
		case p := <-patches:
			assert.Equal(t, placed.ID, p.ID)
			assert.Equal(t, next, p.OrderStatus)
		case <-time.After(3 * time.Second):
			t.Fatalf("status patch for %s never arrived", next)
		}
	}

	got, ok := feed.Get(placed.ID)
	require.True(t, ok)
	assert.Equal(t, models.OrderDelivered, got.OrderStatus)
	assert.Equal(t, placed.Items, got.Items, "patches must not disturb the items")
}

func TestStatusTransitionsAreServerOwned(t *testing.T) {
	client, _, _ := startSandbox(t)
	ctx := context.Background()

	placed := placeSeedOrder(t, client, 1)

	// Skipping a step is rejected; so is moving a terminal order.
	_, err := client.UpdateOrderStatus(ctx, placed.ID, models.OrderReady)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 422, apiErr.Status)

	_, err = client.UpdateOrderStatus(ctx, placed.ID, models.OrderPreparing)
	require.NoError(t, err)
	_, err = client.UpdateOrderStatus(ctx, placed.ID, models.OrderReady)
	require.NoError(t, err)

	// Ready orders can no longer be cancelled.
	_, err = client.CancelOrder(ctx, placed.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 422, apiErr.Status)
}

func TestCancelSingleItemKeepsAggregate(t *testing.T) {
	client, _, _ := startSandbox(t)
	ctx := context.Background()

	placed, err := client.PlaceOrder(ctx, api.PlaceOrderRequest{
		TableNumber:   3,
		Currency:      "INR",
		PaymentMethod: "online",
		Total:         300,
		Items: []api.PlaceOrderItem{
			{MenuItemID: 1, ItemName: "Paneer Tikka", Quantity: 1, PriceINR: 240},
			{MenuItemID: 2, ItemName: "Garlic Naan", Quantity: 1, PriceINR: 60},
		},
	})
	require.NoError(t, err)
	require.Len(t, placed.Items, 2)

	updated, err := client.CancelOrderItem(ctx, placed.ID, placed.Items[1].ID)
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, updated.OrderStatus)
	assert.Equal(t, models.ItemCancelled, updated.Items[1].ItemStatus)
	assert.Equal(t, models.ItemActive, updated.Items[0].ItemStatus)
}

func TestFeedbackMarksOrder(t *testing.T) {
	client, _, _ := startSandbox(t)
	ctx := context.Background()

	placed := placeSeedOrder(t, client, 4)
	require.NoError(t, client.SubmitFeedback(ctx, placed.ID, 5, "great naan"))

	got, err := client.GetOrder(ctx, placed.ID)
	require.NoError(t, err)
	assert.True(t, got.HasFeedback)
}

func TestSocketRejectsBadToken(t *testing.T) {
	_, _, baseURL := startSandbox(t)

	authFailed := false
	_, err := realtime.Dial(context.Background(), baseURL, "not-a-token", realtime.Handlers{
		AuthFailed: func() { authFailed = true },
	}, zap.NewNop())
	assert.Error(t, err)
	assert.True(t, authFailed)
}

func TestOrdersAreCompanyScoped(t *testing.T) {
	client, _, baseURL := startSandbox(t)
	ctx := context.Background()

	placeSeedOrder(t, client, 1)

	// A second tenant sees none of the first tenant's orders.
	otherSess, err := session.Load(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	other := api.New(baseURL, 5*time.Second, otherSess, zap.NewNop())
	_, err = other.Register(ctx, api.RegisterRequest{
		Name:     "Rival Owner",
		Email:    "rival@example.com",
		Password: "rival-pass",
		Company:  "Rival Diner",
	})
	require.NoError(t, err)

	orders, err := other.ListOrders(ctx, api.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestAnalyticsDashboardFromOrders(t *testing.T) {
	client, _, _ := startSandbox(t)
	ctx := context.Background()

	placed := placeSeedOrder(t, client, 2)
	_, err := client.UpdateOrderStatus(ctx, placed.ID, models.OrderPreparing)
	require.NoError(t, err)

	dash, err := client.FetchDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, dash.Summary.TotalOrders)
	assert.InDelta(t, 120, dash.Summary.TotalRevenue, 0.001)
	require.NotEmpty(t, dash.TopItems)
	assert.Equal(t, "Garlic Naan", dash.TopItems[0].ItemName)
}

func TestSupportTicketFlow(t *testing.T) {
	client, _, _ := startSandbox(t)
	ctx := context.Background()

	ticket, err := client.CreateTicket(ctx, "Printer offline", "The kitchen printer stopped responding.")
	require.NoError(t, err)
	assert.Equal(t, models.TicketOpen, ticket.Status)

	replied, err := client.ReplyTicket(ctx, ticket.ID, "It is plugged in, still dead.")
	require.NoError(t, err)
	assert.Equal(t, models.TicketPending, replied.Status)
	assert.Len(t, replied.Messages, 2)
}
