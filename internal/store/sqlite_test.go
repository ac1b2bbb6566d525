package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
)

func newStore(t *testing.T) *CacheStore {
	t.Helper()
	s, err := NewCacheStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadNotificationsEmptyCache(t *testing.T) {
	s := newStore(t)

	notifications, unread, lastFetched, err := s.LoadNotifications(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notifications)
	assert.Zero(t, unread)
	assert.True(t, lastFetched.IsZero())
}

func TestNotificationCacheRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	readAt := time.Now().UTC().Truncate(time.Second)
	entityID := int64(55)
	in := []model.Notification{
		{
			ID: 3, UserID: 42, UserRole: string(model.RoleBuyer),
			Type: model.NotifOrderShipped, Title: "Shipped",
			Message: "Order 55 shipped", Priority: model.PriorityHigh,
			RelatedEntityID: &entityID, RelatedEntityType: "ORDER",
			CreatedAt: time.Now().UTC().Truncate(time.Second),
		},
		{
			ID: 1, UserID: 42, UserRole: string(model.RoleBuyer),
			Type: model.NotifOrderPlaced, Title: "Placed",
			Message: "Order 55 placed", Read: true, ReadAt: &readAt,
			Priority:  model.PriorityNormal,
			CreatedAt: time.Now().UTC().Add(-time.Hour).Truncate(time.Second),
		},
	}
	fetched := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, s.ReplaceNotifications(ctx, in, 1, fetched))

	out, unread, lastFetched, err := s.LoadNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)

	// Server order survives persistence.
	assert.Equal(t, int64(3), out[0].ID)
	assert.Equal(t, int64(1), out[1].ID)
	assert.Equal(t, 1, unread)
	assert.True(t, lastFetched.Equal(fetched))

	assert.Equal(t, model.NotifOrderShipped, out[0].Type)
	require.NotNil(t, out[0].RelatedEntityID)
	assert.Equal(t, int64(55), *out[0].RelatedEntityID)
	assert.True(t, out[1].Read)
	require.NotNil(t, out[1].ReadAt)
}

func TestReplaceNotificationsOverwrites(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	first := []model.Notification{{ID: 1, Title: "a", CreatedAt: time.Now()}}
	require.NoError(t, s.ReplaceNotifications(ctx, first, 1, time.Now()))

	second := []model.Notification{
		{ID: 2, Title: "b", CreatedAt: time.Now()},
		{ID: 3, Title: "c", Read: true, CreatedAt: time.Now()},
	}
	require.NoError(t, s.ReplaceNotifications(ctx, second, 1, time.Now()))

	out, unread, _, err := s.LoadNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(2), out[0].ID)
	assert.Equal(t, 1, unread)
}

func TestCartCacheRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	in := []model.CartItem{
		{ID: 10, Quantity: 2, Product: model.Product{ID: 5, Name: "Dokra figurine", Price: 1200}},
		{ID: 11, Quantity: 1, Product: model.Product{ID: 6, Name: "Bamboo basket", Price: 450}},
	}
	require.NoError(t, s.ReplaceCart(ctx, in))

	out, err := s.LoadCart(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Dokra figurine", out[0].Product.Name)
	assert.Equal(t, 2, out[0].Quantity)
	assert.Equal(t, float64(450), out[1].Product.Price)
}

func TestWishlistCacheRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	in := []model.WishlistItem{
		{ID: 20, Product: model.Product{ID: 7, Name: "Warli painting"}},
	}
	require.NoError(t, s.ReplaceWishlist(ctx, in))

	out, err := s.LoadWishlist(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Warli painting", out[0].Product.Name)
}

func TestClearWipesEverything(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceNotifications(ctx,
		[]model.Notification{{ID: 1, Title: "a", CreatedAt: time.Now()}}, 1, time.Now()))
	require.NoError(t, s.ReplaceCart(ctx,
		[]model.CartItem{{ID: 1, Quantity: 1, Product: model.Product{ID: 1}}}))

	require.NoError(t, s.Clear(ctx))

	notifications, unread, lastFetched, err := s.LoadNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, notifications)
	assert.Zero(t, unread)
	assert.True(t, lastFetched.IsZero())

	cart, err := s.LoadCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)
}
