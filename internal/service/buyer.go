package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/api"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/logging"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/store"
)

// Buyer wraps the buyer-facing endpoints: catalog browsing, cart,
// wishlist, and orders. Cart and wishlist reads are mirrored into the
// local cache when one is provided, so the buyer layout has data to
// show while the network is down.
type Buyer struct {
	client *api.Client
	cache  *store.CacheStore
}

// NewBuyer creates a buyer service over the shared client. cache may
// be nil.
func NewBuyer(client *api.Client, cache *store.CacheStore) *Buyer {
	return &Buyer{client: client, cache: cache}
}

// Products lists the public catalog.
func (b *Buyer) Products(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := b.client.Get(ctx, "/buyer/products", &products); err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	return products, nil
}

// Product fetches one catalog item.
func (b *Buyer) Product(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	path := fmt.Sprintf("/buyer/products/%d", id)
	if err := b.client.Get(ctx, path, &p); err != nil {
		return nil, fmt.Errorf("fetching product %d: %w", id, err)
	}
	return &p, nil
}

// Search finds catalog items matching the keyword.
func (b *Buyer) Search(ctx context.Context, keyword string) ([]model.Product, error) {
	var products []model.Product
	path := "/buyer/search?keyword=" + url.QueryEscape(keyword)
	if err := b.client.Get(ctx, path, &products); err != nil {
		return nil, fmt.Errorf("searching products: %w", err)
	}
	return products, nil
}

// Reviews lists the reviews for a product.
func (b *Buyer) Reviews(ctx context.Context, productID int64) ([]model.Review, error) {
	var reviews []model.Review
	path := fmt.Sprintf("/buyer/products/%d/reviews", productID)
	if err := b.client.Get(ctx, path, &reviews); err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}
	return reviews, nil
}

// Cart returns the buyer's cart contents.
func (b *Buyer) Cart(ctx context.Context, buyerID int64) ([]model.CartItem, error) {
	var items []model.CartItem
	path := fmt.Sprintf("/buyer/%d/cart", buyerID)
	if err := b.client.Get(ctx, path, &items); err != nil {
		if b.cache != nil && !api.IsAuthError(err) {
			if cached, cacheErr := b.cache.LoadCart(ctx); cacheErr == nil && len(cached) > 0 {
				logging.Warn("serving cart from local cache", "err", err)
				return cached, nil
			}
		}
		return nil, fmt.Errorf("fetching cart: %w", err)
	}
	if b.cache != nil {
		if err := b.cache.ReplaceCart(ctx, items); err != nil {
			logging.Debug("persisting cart cache", "err", err)
		}
	}
	return items, nil
}

// AddToCart puts quantity units of a product into the cart.
func (b *Buyer) AddToCart(ctx context.Context, buyerID, productID int64, quantity int) (*model.CartItem, error) {
	var item model.CartItem
	path := fmt.Sprintf("/buyer/%d/cart/add/%d?quantity=%d", buyerID, productID, quantity)
	if err := b.client.Post(ctx, path, nil, &item); err != nil {
		return nil, fmt.Errorf("adding to cart: %w", err)
	}
	return &item, nil
}

// UpdateCartItem changes the quantity of a cart line.
func (b *Buyer) UpdateCartItem(ctx context.Context, cartItemID int64, quantity int) (*model.CartItem, error) {
	var item model.CartItem
	path := fmt.Sprintf("/buyer/cart/%d?quantity=%d", cartItemID, quantity)
	if err := b.client.Put(ctx, path, nil, &item); err != nil {
		return nil, fmt.Errorf("updating cart item %d: %w", cartItemID, err)
	}
	return &item, nil
}

// RemoveCartItem deletes a cart line.
func (b *Buyer) RemoveCartItem(ctx context.Context, cartItemID int64) error {
	path := fmt.Sprintf("/buyer/cart/%d", cartItemID)
	if err := b.client.Delete(ctx, path); err != nil {
		return fmt.Errorf("removing cart item %d: %w", cartItemID, err)
	}
	return nil
}

// PlaceOrder converts the cart into orders.
func (b *Buyer) PlaceOrder(ctx context.Context, buyerID int64) ([]model.Order, error) {
	var orders []model.Order
	path := fmt.Sprintf("/buyer/%d/orders", buyerID)
	if err := b.client.Post(ctx, path, nil, &orders); err != nil {
		return nil, fmt.Errorf("placing order: %w", err)
	}
	return orders, nil
}

// Orders lists the buyer's order history.
func (b *Buyer) Orders(ctx context.Context, buyerID int64) ([]model.Order, error) {
	var orders []model.Order
	path := fmt.Sprintf("/buyer/%d/orders", buyerID)
	if err := b.client.Get(ctx, path, &orders); err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return orders, nil
}

// Wishlist returns the buyer's saved products.
func (b *Buyer) Wishlist(ctx context.Context, buyerID int64) ([]model.WishlistItem, error) {
	var items []model.WishlistItem
	path := fmt.Sprintf("/buyer/%d/wishlist", buyerID)
	if err := b.client.Get(ctx, path, &items); err != nil {
		if b.cache != nil && !api.IsAuthError(err) {
			if cached, cacheErr := b.cache.LoadWishlist(ctx); cacheErr == nil && len(cached) > 0 {
				logging.Warn("serving wishlist from local cache", "err", err)
				return cached, nil
			}
		}
		return nil, fmt.Errorf("fetching wishlist: %w", err)
	}
	if b.cache != nil {
		if err := b.cache.ReplaceWishlist(ctx, items); err != nil {
			logging.Debug("persisting wishlist cache", "err", err)
		}
	}
	return items, nil
}

// AddToWishlist saves a product.
func (b *Buyer) AddToWishlist(ctx context.Context, buyerID, productID int64) (*model.WishlistItem, error) {
	var item model.WishlistItem
	path := fmt.Sprintf("/buyer/%d/wishlist/%d", buyerID, productID)
	if err := b.client.Post(ctx, path, nil, &item); err != nil {
		return nil, fmt.Errorf("adding to wishlist: %w", err)
	}
	return &item, nil
}

// RemoveFromWishlist drops a saved product.
func (b *Buyer) RemoveFromWishlist(ctx context.Context, buyerID, productID int64) error {
	path := fmt.Sprintf("/buyer/%d/wishlist/%d", buyerID, productID)
	if err := b.client.Delete(ctx, path); err != nil {
		return fmt.Errorf("removing from wishlist: %w", err)
	}
	return nil
}
