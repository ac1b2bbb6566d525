package service

import (
	"context"
	"fmt"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/api"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
)

// NotificationAPI is the surface the notification store depends on;
// tests substitute a fake.
type NotificationAPI interface {
	List(ctx context.Context, userID int64, role model.Role) ([]model.Notification, error)
	ListUnread(ctx context.Context, userID int64, role model.Role) ([]model.Notification, error)
	UnreadCount(ctx context.Context, userID int64, role model.Role) (int, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, userID int64, role model.Role) error
	Delete(ctx context.Context, id int64) error
}

// Notifications wraps the notification endpoints.
type Notifications struct {
	client *api.Client
}

var _ NotificationAPI = (*Notifications)(nil)

// NewNotifications creates a notification service over the shared client.
func NewNotifications(client *api.Client) *Notifications {
	return &Notifications{client: client}
}

// List returns all notifications for a user, newest first
// (server insertion order).
func (n *Notifications) List(ctx context.Context, userID int64, role model.Role) ([]model.Notification, error) {
	var out []model.Notification
	path := fmt.Sprintf("/api/notifications/%d/%s", userID, role)
	if err := n.client.Get(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return out, nil
}

// ListUnread returns only the unread notifications for a user.
func (n *Notifications) ListUnread(ctx context.Context, userID int64, role model.Role) ([]model.Notification, error) {
	var out []model.Notification
	path := fmt.Sprintf("/api/notifications/%d/%s/unread", userID, role)
	if err := n.client.Get(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("listing unread notifications: %w", err)
	}
	return out, nil
}

// UnreadCount returns the number of unread notifications. The polling
// loop uses it instead of refetching full payloads every cycle.
func (n *Notifications) UnreadCount(ctx context.Context, userID int64, role model.Role) (int, error) {
	var out model.UnreadCount
	path := fmt.Sprintf("/api/notifications/%d/%s/count", userID, role)
	if err := n.client.Get(ctx, path, &out); err != nil {
		return 0, fmt.Errorf("fetching unread count: %w", err)
	}
	return out.Count, nil
}

// MarkRead marks a single notification as read.
func (n *Notifications) MarkRead(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/notifications/%d/read", id)
	if err := n.client.Put(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("marking notification %d read: %w", id, err)
	}
	return nil
}

// MarkAllRead marks every notification for the user as read.
func (n *Notifications) MarkAllRead(ctx context.Context, userID int64, role model.Role) error {
	path := fmt.Sprintf("/api/notifications/%d/%s/read-all", userID, role)
	if err := n.client.Put(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("marking all notifications read: %w", err)
	}
	return nil
}

// Delete removes a notification.
func (n *Notifications) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/notifications/%d", id)
	if err := n.client.Delete(ctx, path); err != nil {
		return fmt.Errorf("deleting notification %d: %w", id, err)
	}
	return nil
}
