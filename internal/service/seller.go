package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/api"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
)

// Seller wraps the seller-facing endpoints: dashboard, product CRUD,
// orders, and analytics.
type Seller struct {
	client *api.Client
}

// NewSeller creates a seller service over the shared client.
func NewSeller(client *api.Client) *Seller {
	return &Seller{client: client}
}

// Stats returns the seller dashboard summary.
func (s *Seller) Stats(ctx context.Context, sellerID int64) (*model.SellerStats, error) {
	var stats model.SellerStats
	path := fmt.Sprintf("/seller/%d/dashboard", sellerID)
	if err := s.client.Get(ctx, path, &stats); err != nil {
		return nil, fmt.Errorf("fetching seller stats: %w", err)
	}
	return &stats, nil
}

// Products lists the seller's catalog.
func (s *Seller) Products(ctx context.Context, sellerID int64) ([]model.Product, error) {
	var products []model.Product
	path := fmt.Sprintf("/seller/%d/products", sellerID)
	if err := s.client.Get(ctx, path, &products); err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

// AddProduct creates a new product listing.
func (s *Seller) AddProduct(ctx context.Context, sellerID int64, p model.Product) (*model.Product, error) {
	var created model.Product
	path := fmt.Sprintf("/seller/%d/products", sellerID)
	if err := s.client.Post(ctx, path, p, &created); err != nil {
		return nil, fmt.Errorf("adding product: %w", err)
	}
	return &created, nil
}

// UpdateProduct modifies an existing listing.
func (s *Seller) UpdateProduct(ctx context.Context, productID int64, p model.Product) (*model.Product, error) {
	var updated model.Product
	path := fmt.Sprintf("/seller/products/%d", productID)
	if err := s.client.Put(ctx, path, p, &updated); err != nil {
		return nil, fmt.Errorf("updating product %d: %w", productID, err)
	}
	return &updated, nil
}

// DeleteProduct removes a listing.
func (s *Seller) DeleteProduct(ctx context.Context, productID int64) error {
	path := fmt.Sprintf("/seller/products/%d", productID)
	if err := s.client.Delete(ctx, path); err != nil {
		return fmt.Errorf("deleting product %d: %w", productID, err)
	}
	return nil
}

// Orders lists the orders placed against the seller's products.
func (s *Seller) Orders(ctx context.Context, sellerID int64) ([]model.Order, error) {
	var orders []model.Order
	path := fmt.Sprintf("/seller/%d/orders", sellerID)
	if err := s.client.Get(ctx, path, &orders); err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus transitions an order to the given status.
func (s *Seller) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*model.Order, error) {
	var updated model.Order
	path := fmt.Sprintf("/seller/orders/%d/status?status=%s", orderID, url.QueryEscape(status))
	if err := s.client.Put(ctx, path, nil, &updated); err != nil {
		return nil, fmt.Errorf("updating order %d status: %w", orderID, err)
	}
	return &updated, nil
}

// Analytics returns the periodized sales report. period is "week",
// "month", or "year"; empty defaults to "month".
func (s *Seller) Analytics(ctx context.Context, sellerID int64, period string) (*model.SellerAnalytics, error) {
	if period == "" {
		period = "month"
	}
	var out model.SellerAnalytics
	path := fmt.Sprintf("/seller/%d/analytics?period=%s", sellerID, url.QueryEscape(period))
	if err := s.client.Get(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("fetching analytics: %w", err)
	}
	return &out, nil
}
