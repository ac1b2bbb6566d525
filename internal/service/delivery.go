package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/api"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/logging"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
)

// Delivery wraps the delivery and admin-delivery endpoints.
//
// The backend's delivery subsystem is rolled out behind the rest of
// the marketplace, so a handful of read endpoints support an explicit
// degraded mode: when enabled and the live call fails, canned data is
// returned, the result is flagged as degraded, and a warning is
// logged. Degraded mode is off unless configured.
type Delivery struct {
	client        *api.Client
	allowFallback bool
}

// NewDelivery creates a delivery service over the shared client.
func NewDelivery(client *api.Client, allowFallback bool) *Delivery {
	return &Delivery{client: client, allowFallback: allowFallback}
}

// FallbackEnabled reports whether degraded mode is configured on.
func (d *Delivery) FallbackEnabled() bool {
	return d.allowFallback
}

// Track looks up one delivery by its public tracking id. degraded is
// true when the value came from the fallback data set.
func (d *Delivery) Track(ctx context.Context, trackingID string) (delivery *model.Delivery, degraded bool, err error) {
	var out model.Delivery
	path := "/delivery/track/" + url.PathEscape(trackingID)
	if err := d.client.Get(ctx, path, &out); err != nil {
		if d.allowFallback && !api.IsAuthError(err) {
			logging.Warn("delivery track falling back to canned data",
				"trackingId", trackingID, "err", err)
			fb := fallbackDelivery(trackingID)
			return &fb, true, nil
		}
		return nil, false, fmt.Errorf("tracking delivery %s: %w", trackingID, err)
	}
	return &out, false, nil
}

// ForBuyer lists a buyer's deliveries.
func (d *Delivery) ForBuyer(ctx context.Context, buyerID int64) ([]model.Delivery, error) {
	var out []model.Delivery
	path := fmt.Sprintf("/delivery/buyer/%d", buyerID)
	if err := d.client.Get(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("listing buyer deliveries: %w", err)
	}
	return out, nil
}

// ForSeller lists a seller's outgoing deliveries.
func (d *Delivery) ForSeller(ctx context.Context, sellerID int64) ([]model.Delivery, error) {
	var out []model.Delivery
	path := fmt.Sprintf("/delivery/seller/%d", sellerID)
	if err := d.client.Get(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("listing seller deliveries: %w", err)
	}
	return out, nil
}

// AgentDeliveries lists the shipments assigned to one agent. degraded
// is true when the queue came from the fallback data set.
func (d *Delivery) AgentDeliveries(ctx context.Context, agentID int64) (deliveries []model.Delivery, degraded bool, err error) {
	var out []model.Delivery
	path := fmt.Sprintf("/delivery/agent/%d/deliveries", agentID)
	if err := d.client.Get(ctx, path, &out); err != nil {
		if d.allowFallback && !api.IsAuthError(err) {
			logging.Warn("agent queue falling back to canned data",
				"agentId", agentID, "err", err)
			return fallbackDeliveries(), true, nil
		}
		return nil, false, fmt.Errorf("listing agent deliveries: %w", err)
	}
	return out, false, nil
}

// AcceptDelivery records an agent taking ownership of an assigned
// shipment.
func (d *Delivery) AcceptDelivery(ctx context.Context, deliveryID, agentID int64) error {
	path := fmt.Sprintf("/delivery/%d/accept/%d", deliveryID, agentID)
	if err := d.client.Post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("accepting delivery %d: %w", deliveryID, err)
	}
	return nil
}

// AvailableAgents lists agents able to serve a pincode.
func (d *Delivery) AvailableAgents(ctx context.Context, pincode string) (agents []model.DeliveryAgent, degraded bool, err error) {
	var out []model.DeliveryAgent
	path := "/delivery/agents/available/" + url.PathEscape(pincode)
	if err := d.client.Get(ctx, path, &out); err != nil {
		if d.allowFallback && !api.IsAuthError(err) {
			logging.Warn("agent lookup falling back to canned data",
				"pincode", pincode, "err", err)
			return fallbackAgents(), true, nil
		}
		return nil, false, fmt.Errorf("listing available agents: %w", err)
	}
	return out, false, nil
}

// ToggleAgentStatus flips an agent between online and offline.
func (d *Delivery) ToggleAgentStatus(ctx context.Context, agentID int64) error {
	path := fmt.Sprintf("/delivery/agents/%d/toggle-status", agentID)
	if err := d.client.Post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("toggling agent %d status: %w", agentID, err)
	}
	return nil
}

// CheckServiceability reports whether a pincode is deliverable.
func (d *Delivery) CheckServiceability(ctx context.Context, pincode string) (bool, error) {
	var serviceable bool
	path := "/delivery/serviceable/" + url.PathEscape(pincode)
	if err := d.client.Get(ctx, path, &serviceable); err != nil {
		return false, fmt.Errorf("checking serviceability of %s: %w", pincode, err)
	}
	return serviceable, nil
}

// Charge returns the delivery fee for a pincode and delivery type
// (STANDARD or EXPRESS).
func (d *Delivery) Charge(ctx context.Context, pincode, deliveryType string) (float64, error) {
	if deliveryType == "" {
		deliveryType = "STANDARD"
	}
	var charge float64
	path := fmt.Sprintf("/delivery/charge/%s/%s",
		url.PathEscape(pincode), url.PathEscape(deliveryType))
	if err := d.client.Get(ctx, path, &charge); err != nil {
		return 0, fmt.Errorf("fetching delivery charge: %w", err)
	}
	return charge, nil
}

// AllDeliveries lists every delivery (admin).
func (d *Delivery) AllDeliveries(ctx context.Context) (deliveries []model.Delivery, degraded bool, err error) {
	var out []model.Delivery
	if err := d.client.Get(ctx, "/admin/delivery/all", &out); err != nil {
		if d.allowFallback && !api.IsAuthError(err) {
			logging.Warn("admin delivery list falling back to canned data", "err", err)
			return fallbackDeliveries(), true, nil
		}
		return nil, false, fmt.Errorf("listing all deliveries: %w", err)
	}
	return out, false, nil
}

// ActiveDeliveries lists in-flight deliveries (admin).
func (d *Delivery) ActiveDeliveries(ctx context.Context) ([]model.Delivery, error) {
	var out []model.Delivery
	if err := d.client.Get(ctx, "/admin/delivery/active", &out); err != nil {
		return nil, fmt.Errorf("listing active deliveries: %w", err)
	}
	return out, nil
}

// Analytics returns the fleet-wide delivery overview (admin).
func (d *Delivery) Analytics(ctx context.Context) (analytics *model.DeliveryAnalytics, degraded bool, err error) {
	var out model.DeliveryAnalytics
	if err := d.client.Get(ctx, "/admin/delivery/analytics", &out); err != nil {
		if d.allowFallback && !api.IsAuthError(err) {
			logging.Warn("delivery analytics falling back to canned data", "err", err)
			fb := fallbackAnalytics()
			return &fb, true, nil
		}
		return nil, false, fmt.Errorf("fetching delivery analytics: %w", err)
	}
	return &out, false, nil
}

// Reassign moves a delivery to a different agent (admin).
func (d *Delivery) Reassign(ctx context.Context, deliveryID, newAgentID int64) error {
	path := fmt.Sprintf("/admin/delivery/%d/reassign/%d", deliveryID, newAgentID)
	if err := d.client.Post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("reassigning delivery %d: %w", deliveryID, err)
	}
	return nil
}

// UpdateStatus pushes a status transition onto a delivery (admin).
func (d *Delivery) UpdateStatus(ctx context.Context, deliveryID int64, status, notes string) error {
	body := struct {
		Status string `json:"status"`
		Notes  string `json:"notes,omitempty"`
	}{Status: status, Notes: notes}

	path := fmt.Sprintf("/admin/delivery/%d/status", deliveryID)
	if err := d.client.Post(ctx, path, body, nil); err != nil {
		return fmt.Errorf("updating delivery %d status: %w", deliveryID, err)
	}
	return nil
}
