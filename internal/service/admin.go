package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/api"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
)

// AdminMetrics is the admin dashboard summary.
type AdminMetrics struct {
	TotalBuyers    int     `json:"totalBuyers"`
	TotalSellers   int     `json:"totalSellers"`
	PendingSellers int     `json:"pendingSellers"`
	TotalProducts  int     `json:"totalProducts"`
	TotalOrders    int     `json:"totalOrders"`
	TotalRevenue   float64 `json:"totalRevenue"`
}

// Admin wraps the admin endpoints for seller/buyer management and
// marketplace oversight.
type Admin struct {
	client *api.Client
}

// NewAdmin creates an admin service over the shared client.
func NewAdmin(client *api.Client) *Admin {
	return &Admin{client: client}
}

// Metrics returns the admin dashboard summary.
func (a *Admin) Metrics(ctx context.Context) (*AdminMetrics, error) {
	var m AdminMetrics
	if err := a.client.Get(ctx, "/admin/dashboard/metrics", &m); err != nil {
		return nil, fmt.Errorf("fetching admin metrics: %w", err)
	}
	return &m, nil
}

// Sellers lists every registered seller.
func (a *Admin) Sellers(ctx context.Context) ([]model.SellerProfile, error) {
	var sellers []model.SellerProfile
	if err := a.client.Get(ctx, "/admin/sellers", &sellers); err != nil {
		return nil, fmt.Errorf("listing sellers: %w", err)
	}
	return sellers, nil
}

// SellersByStatus lists sellers filtered by approval status.
func (a *Admin) SellersByStatus(ctx context.Context, status string) ([]model.SellerProfile, error) {
	var sellers []model.SellerProfile
	path := "/admin/sellers/pending?status=" + url.QueryEscape(status)
	if err := a.client.Get(ctx, path, &sellers); err != nil {
		return nil, fmt.Errorf("listing %s sellers: %w", status, err)
	}
	return sellers, nil
}

// ApproveSeller approves a pending seller account.
func (a *Admin) ApproveSeller(ctx context.Context, sellerID int64) error {
	path := fmt.Sprintf("/admin/sellers/%d/approve", sellerID)
	if err := a.client.Put(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("approving seller %d: %w", sellerID, err)
	}
	return nil
}

// SuspendSeller suspends a seller account.
func (a *Admin) SuspendSeller(ctx context.Context, sellerID int64) error {
	path := fmt.Sprintf("/admin/sellers/%d/suspend", sellerID)
	if err := a.client.Put(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("suspending seller %d: %w", sellerID, err)
	}
	return nil
}

// Buyers lists every registered buyer.
func (a *Admin) Buyers(ctx context.Context) ([]model.User, error) {
	var buyers []model.User
	if err := a.client.Get(ctx, "/admin/buyers", &buyers); err != nil {
		return nil, fmt.Errorf("listing buyers: %w", err)
	}
	return buyers, nil
}

// Products lists every product in the marketplace.
func (a *Admin) Products(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := a.client.Get(ctx, "/admin/products", &products); err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

// RemoveProduct takes a product off the marketplace.
func (a *Admin) RemoveProduct(ctx context.Context, productID int64) error {
	path := fmt.Sprintf("/admin/products/%d", productID)
	if err := a.client.Delete(ctx, path); err != nil {
		return fmt.Errorf("removing product %d: %w", productID, err)
	}
	return nil
}

// Orders lists every order in the marketplace.
func (a *Admin) Orders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := a.client.Get(ctx, "/admin/orders", &orders); err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return orders, nil
}
