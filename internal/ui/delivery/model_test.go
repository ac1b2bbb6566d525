package delivery

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/api"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/keys"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/notice"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/service"
)

func newAgentView(t *testing.T, handler http.HandlerFunc) (Model, *notice.Bus, *[]string) {
	t.Helper()

	var requests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Method+" "+r.URL.Path)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, func() string { return "tok" }, api.Hooks{})
	bus := notice.NewBus()
	m := New(service.NewDelivery(client, false), bus, keys.DefaultKeyMap(), 80, 24)
	m.SetIdentity(7)
	return m, bus, &requests
}

func TestQueueLoadsFromAgentScope(t *testing.T) {
	m, _, requests := newAgentView(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":9,"trackingId":"VV-DEL-000009","status":"ASSIGNED"}]`))
	})

	msg := m.Init()()
	loaded, ok := msg.(DeliveriesLoadedMsg)
	require.True(t, ok)
	require.Len(t, loaded.Deliveries, 1)

	assert.Equal(t, []string{"GET /delivery/agent/7/deliveries"}, *requests)
}

func TestEnterAcceptsAssignedDelivery(t *testing.T) {
	m, bus, requests := newAgentView(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	m.deliveries = []model.Delivery{
		{ID: 9, TrackingID: "VV-DEL-000009", Status: model.DeliveryAssigned},
	}

	msg := m.advanceSelected()()
	_, ok := msg.(StatusUpdatedMsg)
	require.True(t, ok)

	assert.Equal(t, []string{"POST /delivery/9/accept/7"}, *requests)

	n, ok := bus.TryNext()
	require.True(t, ok)
	assert.Equal(t, "Delivery VV-DEL-000009 accepted", n.Message)
}

func TestEnterAdvancesAcceptedDelivery(t *testing.T) {
	m, _, requests := newAgentView(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	m.deliveries = []model.Delivery{
		{ID: 9, TrackingID: "VV-DEL-000009", Status: model.DeliveryAcceptedByAgent},
	}

	m.advanceSelected()()
	assert.Equal(t, []string{"POST /admin/delivery/9/status"}, *requests)
}

func TestToggleDutyHitsAgentEndpoint(t *testing.T) {
	m, _, requests := newAgentView(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	msg := m.toggleDuty()()
	_, ok := msg.(DutyToggledMsg)
	require.True(t, ok)

	assert.Equal(t, []string{"POST /delivery/agents/7/toggle-status"}, *requests)
}
