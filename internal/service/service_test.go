package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/api"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
	"github.com/vanvyapaar/vanvyapaar-cli/tests/testutil"
)

type recordedRequest struct {
	method string
	path   string
}

func newTestServer(t *testing.T, handler http.HandlerFunc) (*api.Client, *[]recordedRequest) {
	t.Helper()

	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, recordedRequest{method: r.Method, path: r.URL.Path})
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, func() string { return "tok" }, api.Hooks{})
	return client, &requests
}

func TestNotificationEndpoints(t *testing.T) {
	client, requests := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/notifications/42/BUYER":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id":7,"title":"Order shipped","isRead":false}]`))
		case "/api/notifications/42/BUYER/count":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"count":3}`))
		default:
			w.WriteHeader(http.StatusOK)
		}
	})
	svc := NewNotifications(client)
	ctx := context.Background()

	list, err := svc.List(ctx, 42, model.RoleBuyer)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(7), list[0].ID)

	count, err := svc.UnreadCount(ctx, 42, model.RoleBuyer)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, svc.MarkRead(ctx, 7))
	require.NoError(t, svc.MarkAllRead(ctx, 42, model.RoleBuyer))
	require.NoError(t, svc.Delete(ctx, 7))

	assert.Equal(t, []recordedRequest{
		{"GET", "/api/notifications/42/BUYER"},
		{"GET", "/api/notifications/42/BUYER/count"},
		{"PUT", "/api/notifications/7/read"},
		{"PUT", "/api/notifications/42/BUYER/read-all"},
		{"DELETE", "/api/notifications/7"},
	}, *requests)
}

func TestDeliveryTrackLive(t *testing.T) {
	client, requests := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":9,"trackingId":"VV-DEL-000009","status":"IN_TRANSIT"}`))
	})
	svc := NewDelivery(client, false)

	d, degraded, err := svc.Track(context.Background(), "VV-DEL-000009")
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Equal(t, int64(9), d.ID)
	assert.Equal(t, "/delivery/track/VV-DEL-000009", (*requests)[0].path)
}

func TestDeliveryTrackFallback(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	svc := NewDelivery(client, true)

	d, degraded, err := svc.Track(context.Background(), "VV-DEL-000123")
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Equal(t, "VV-DEL-000123", d.TrackingID)
	assert.Equal(t, model.DeliveryInTransit, d.Status)
}

func TestDeliveryTrackNoFallbackConfigured(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	svc := NewDelivery(client, false)

	_, degraded, err := svc.Track(context.Background(), "VV-DEL-000123")
	require.Error(t, err)
	assert.False(t, degraded)
}

func TestDeliveryTrackFallbackSkipsAuthErrors(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	svc := NewDelivery(client, true)

	_, degraded, err := svc.Track(context.Background(), "VV-DEL-000123")
	require.Error(t, err)
	assert.False(t, degraded)
	assert.True(t, api.IsAuthError(err))
}

func TestDeliveryAnalyticsFallback(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	svc := NewDelivery(client, true)

	analytics, degraded, err := svc.Analytics(context.Background())
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.NotZero(t, analytics.TotalDeliveries)
	assert.NotZero(t, analytics.TotalAgents)
}

func TestBuyerCartServedFromCacheWhenServerDown(t *testing.T) {
	cache := testutil.NewTestStore(t)

	healthy := true
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"quantity":2,"product":{"id":5,"name":"Dokra figurine","price":1200}}]`))
	})
	svc := NewBuyer(client, cache)
	ctx := context.Background()

	items, err := svc.Cart(ctx, 42)
	require.NoError(t, err)
	require.Len(t, items, 1)

	healthy = false
	items, err = svc.Cart(ctx, 42)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Dokra figurine", items[0].Product.Name)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestBuyerCartAuthErrorSkipsCache(t *testing.T) {
	cache := testutil.NewTestStore(t)
	require.NoError(t, cache.ReplaceCart(context.Background(), []model.CartItem{
		{ID: 1, Quantity: 1, Product: model.Product{ID: 5}},
	}))

	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	svc := NewBuyer(client, cache)

	_, err := svc.Cart(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, api.IsAuthError(err))
}

func TestAgentDeliveryEndpoints(t *testing.T) {
	client, requests := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/delivery/agent/7/deliveries":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id":9,"trackingId":"VV-DEL-000009","status":"ASSIGNED"}]`))
		default:
			w.WriteHeader(http.StatusOK)
		}
	})
	svc := NewDelivery(client, false)
	ctx := context.Background()

	queue, degraded, err := svc.AgentDeliveries(ctx, 7)
	require.NoError(t, err)
	assert.False(t, degraded)
	require.Len(t, queue, 1)
	assert.Equal(t, model.DeliveryAssigned, queue[0].Status)

	require.NoError(t, svc.AcceptDelivery(ctx, 9, 7))
	require.NoError(t, svc.ToggleAgentStatus(ctx, 7))

	assert.Equal(t, []recordedRequest{
		{"GET", "/delivery/agent/7/deliveries"},
		{"POST", "/delivery/9/accept/7"},
		{"POST", "/delivery/agents/7/toggle-status"},
	}, *requests)
}

func TestAgentDeliveriesFallback(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	svc := NewDelivery(client, true)

	queue, degraded, err := svc.AgentDeliveries(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.NotEmpty(t, queue)
}

func TestChatbotMessage(t *testing.T) {
	var prompt model.ChatPrompt
	client, requests := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&prompt))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"message": "Here are some handicrafts",
			"type": "PRODUCT_LIST",
			"data": [{"id":5,"name":"Dokra figurine","price":1200,"category":"Handicraft"}],
			"suggestions": ["Track my orders","Shipping policy"]
		}`))
	})
	svc := NewChatbot(client)

	reply, err := svc.Send(context.Background(), "show products", model.RoleBuyer, 42)
	require.NoError(t, err)

	assert.Equal(t, []recordedRequest{{"POST", "/api/chatbot/message"}}, *requests)
	assert.Equal(t, "show products", prompt.Message)
	assert.Equal(t, "BUYER", prompt.UserRole)
	assert.Equal(t, int64(42), prompt.UserID)

	assert.Equal(t, model.ChatProductList, reply.Type)
	require.Len(t, reply.Data, 1)
	assert.Equal(t, "Dokra figurine", reply.Data[0].Name)
	assert.Equal(t, []string{"Track my orders", "Shipping policy"}, reply.Suggestions)
}

func TestChatbotGuestRole(t *testing.T) {
	var prompt model.ChatPrompt
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&prompt))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Namaste!","type":"TEXT"}`))
	})
	svc := NewChatbot(client)

	_, err := svc.Send(context.Background(), "hello", "", 0)
	require.NoError(t, err)
	assert.Equal(t, model.ChatGuestRole, prompt.UserRole)
	assert.Zero(t, prompt.UserID)
}

func TestDeliveryCharge(t *testing.T) {
	client, requests := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`45.5`))
	})
	svc := NewDelivery(client, false)

	charge, err := svc.Charge(context.Background(), "400001", "")
	require.NoError(t, err)
	assert.Equal(t, 45.5, charge)

	// Empty delivery type defaults to STANDARD.
	assert.Equal(t, "/delivery/charge/400001/STANDARD", (*requests)[0].path)
}

func TestDeliveryServiceability(t *testing.T) {
	client, requests := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`true`))
	})
	svc := NewDelivery(client, false)

	serviceable, err := svc.CheckServiceability(context.Background(), "400001")
	require.NoError(t, err)
	assert.True(t, serviceable)
	assert.Equal(t, "/delivery/serviceable/400001", (*requests)[0].path)
}
