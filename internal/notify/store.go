// Package notify owns the client-side notification cache: an ordered
// copy of the user's server-owned notifications, a derived unread
// count, periodic polling of the lightweight count endpoint, and
// optimistic local mutation for read/delete actions.
package notify

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/logging"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/notice"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/service"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/store"
)

// DefaultPollInterval is how often the poller refreshes the unread
// count from the server.
const DefaultPollInterval = 30 * time.Second

// fetchTimeout bounds the background calls issued by the poller and
// the reconciler.
const fetchTimeout = 30 * time.Second

// UpdateMsg is the tea.Msg delivered when the cache changes outside a
// direct user action (polling refresh, reconciliation).
type UpdateMsg struct {
	UnreadCount int
}

// tickerFactory builds a ticker channel plus its stop function. Tests
// inject a manual implementation to control time.
type tickerFactory func(d time.Duration) (<-chan time.Time, func())

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Store is the notification cache. The unread count is always
// recomputed from the cached list after a local mutation, so it can
// never drift from the items it is derived from; the count fetched by
// the polling loop is the server's authoritative value and may run
// ahead of a stale list until the next full fetch.
type Store struct {
	mu      sync.Mutex
	svc     service.NotificationAPI
	notices *notice.Bus
	cache   *store.CacheStore // optional; nil disables persistence

	notifications []model.Notification
	unreadCount   int
	lastFetched   time.Time
	loading       bool

	// mutSeq increments on every local mutation. A full fetch records
	// the value when it starts and discards its result if a mutation
	// landed in between, so a slow response cannot clobber newer
	// optimistic state.
	mutSeq uint64

	// reconciling is the single-flight guard for the re-fetch issued
	// after a failed server mutation.
	reconciling bool

	// Identity of the collection currently cached, remembered so the
	// poller and reconciler know what to fetch.
	userID int64
	role   model.Role

	pollInterval time.Duration
	newTicker    tickerFactory
	pollStop     chan struct{}

	updates chan UpdateMsg
}

// Option configures a Store.
type Option func(*Store)

// WithPollInterval overrides the polling cadence.
func WithPollInterval(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithCache enables persistence of the notification cache.
func WithCache(c *store.CacheStore) Option {
	return func(s *Store) { s.cache = c }
}

// withTickerFactory injects a deterministic ticker; test-only.
func withTickerFactory(f tickerFactory) Option {
	return func(s *Store) { s.newTicker = f }
}

// NewStore creates a notification store, rehydrating any persisted
// cache when one is configured.
func NewStore(svc service.NotificationAPI, notices *notice.Bus, opts ...Option) *Store {
	s := &Store{
		svc:          svc,
		notices:      notices,
		pollInterval: DefaultPollInterval,
		newTicker:    realTicker,
		updates:      make(chan UpdateMsg, 16),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.cache != nil {
		notifications, unread, lastFetched, err := s.cache.LoadNotifications(context.Background())
		if err != nil {
			logging.Warn("rehydrating notification cache", "err", err)
		} else {
			s.notifications = notifications
			s.unreadCount = unread
			s.lastFetched = lastFetched
		}
	}

	return s
}

// Notifications returns a copy of the cached list in server insertion
// order.
func (s *Store) Notifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// UnreadCount returns the current unread count.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unreadCount
}

// LastFetched returns when the list was last replaced from the server.
func (s *Store) LastFetched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFetched
}

// IsLoading reports whether a full fetch is in flight.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Fetch replaces the cached list and unread count from the server.
// A result that raced with a local mutation is discarded: last write
// wins by sequence, not by arrival.
func (s *Store) Fetch(ctx context.Context, userID int64, role model.Role) error {
	s.mu.Lock()
	s.loading = true
	s.userID = userID
	s.role = role
	startSeq := s.mutSeq
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	notifications, err := s.svc.List(ctx, userID, role)
	if err != nil {
		logging.Warn("fetching notifications", "err", err)
		return err
	}
	count, err := s.svc.UnreadCount(ctx, userID, role)
	if err != nil {
		logging.Warn("fetching unread count", "err", err)
		return err
	}

	s.mu.Lock()
	if s.mutSeq != startSeq {
		s.mu.Unlock()
		logging.Debug("discarding stale notification fetch",
			"fetchedAt", startSeq, "now", s.mutSeq)
		return nil
	}
	s.notifications = notifications
	s.unreadCount = count
	s.lastFetched = time.Now()
	s.persistLocked()
	s.mu.Unlock()

	s.pushUpdate()
	return nil
}

// FetchUnreadCount refreshes only the unread count. The polling loop
// uses it to avoid refetching full payloads every cycle.
func (s *Store) FetchUnreadCount(ctx context.Context, userID int64, role model.Role) error {
	count, err := s.svc.UnreadCount(ctx, userID, role)
	if err != nil {
		logging.Warn("polling unread count", "err", err)
		return err
	}

	s.mu.Lock()
	changed := s.unreadCount != count
	s.unreadCount = count
	s.persistLocked()
	s.mu.Unlock()

	if changed {
		s.pushUpdate()
	}
	return nil
}

// MarkAsRead optimistically marks one cached notification read, then
// confirms with the server. A failed confirmation is surfaced as a
// notice and triggers a reconciling re-fetch.
func (s *Store) MarkAsRead(ctx context.Context, id int64) {
	now := time.Now()

	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].ID == id && !s.notifications[i].Read {
			s.notifications[i].Read = true
			s.notifications[i].ReadAt = &now
		}
	}
	s.mutSeq++
	s.recomputeUnreadLocked()
	s.persistLocked()
	s.mu.Unlock()

	if err := s.svc.MarkRead(ctx, id); err != nil {
		logging.Warn("marking notification read", "id", id, "err", err)
		s.notices.Error("Failed to mark notification as read")
		s.reconcile()
	}
}

// MarkAllAsRead optimistically marks every cached notification read
// and zeroes the count, then confirms with the server in bulk.
func (s *Store) MarkAllAsRead(ctx context.Context, userID int64, role model.Role) {
	now := time.Now()

	s.mu.Lock()
	for i := range s.notifications {
		if !s.notifications[i].Read {
			s.notifications[i].Read = true
			s.notifications[i].ReadAt = &now
		}
	}
	s.mutSeq++
	s.recomputeUnreadLocked()
	s.persistLocked()
	s.mu.Unlock()

	if err := s.svc.MarkAllRead(ctx, userID, role); err != nil {
		logging.Warn("marking all notifications read", "err", err)
		s.notices.Error("Failed to mark all notifications as read")
		s.reconcile()
		return
	}
	s.notices.Success("All notifications marked as read")
}

// Delete optimistically removes one cached notification, then
// confirms with the server.
func (s *Store) Delete(ctx context.Context, id int64) {
	s.mu.Lock()
	kept := s.notifications[:0]
	for _, n := range s.notifications {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.notifications = kept
	s.mutSeq++
	s.recomputeUnreadLocked()
	s.persistLocked()
	s.mu.Unlock()

	if err := s.svc.Delete(ctx, id); err != nil {
		logging.Warn("deleting notification", "id", id, "err", err)
		s.notices.Error("Failed to delete notification")
		s.reconcile()
		return
	}
	s.notices.Success("Notification deleted")
}

// Add prepends a locally known notification, e.g. one carried in a
// push payload. It does not call the server.
func (s *Store) Add(n model.Notification) {
	s.mu.Lock()
	s.notifications = append([]model.Notification{n}, s.notifications...)
	s.mutSeq++
	s.recomputeUnreadLocked()
	s.persistLocked()
	s.mu.Unlock()
	s.pushUpdate()
}

// Clear empties the cache. Called on logout.
func (s *Store) Clear() {
	s.mu.Lock()
	s.notifications = nil
	s.unreadCount = 0
	s.lastFetched = time.Time{}
	s.mutSeq++
	s.userID = 0
	s.role = ""
	if s.cache != nil {
		if err := s.cache.Clear(context.Background()); err != nil {
			logging.Warn("clearing notification cache", "err", err)
		}
	}
	s.mu.Unlock()
	s.pushUpdate()
}

// StartPolling refreshes the unread count every poll interval until
// StopPolling. The store owns exactly one ticker: starting again
// cancels the previous one first, so two calls never leave two timers
// running.
func (s *Store) StartPolling(userID int64, role model.Role) {
	s.mu.Lock()
	if s.pollStop != nil {
		close(s.pollStop)
	}
	stop := make(chan struct{})
	s.pollStop = stop
	s.userID = userID
	s.role = role
	tick, stopTicker := s.newTicker(s.pollInterval)
	s.mu.Unlock()

	go func() {
		defer stopTicker()
		for {
			select {
			case <-stop:
				return
			case <-tick:
				ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
				_ = s.FetchUnreadCount(ctx, userID, role)
				cancel()
			}
		}
	}()
}

// StopPolling cancels the active ticker, if any. Safe to call
// repeatedly.
func (s *Store) StopPolling() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pollStop != nil {
		close(s.pollStop)
		s.pollStop = nil
	}
}

// Wait returns a tea.Cmd that delivers the next UpdateMsg. Call it
// again after each message to keep listening.
func (s *Store) Wait() tea.Cmd {
	return func() tea.Msg {
		return <-s.updates
	}
}

// reconcile schedules a single-flight full re-fetch after a failed
// server mutation, so optimistic local state converges back to the
// server instead of diverging silently.
func (s *Store) reconcile() {
	s.mu.Lock()
	if s.reconciling || s.userID == 0 {
		s.mu.Unlock()
		return
	}
	s.reconciling = true
	userID, role := s.userID, s.role
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.reconciling = false
			s.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		if err := s.Fetch(ctx, userID, role); err != nil {
			logging.Warn("reconciling notification cache", "err", err)
		}
	}()
}

// recomputeUnreadLocked derives the unread count from the list. The
// caller must hold s.mu.
func (s *Store) recomputeUnreadLocked() {
	count := 0
	for _, n := range s.notifications {
		if !n.Read {
			count++
		}
	}
	s.unreadCount = count
}

// persistLocked writes the cache snapshot to the local store. The
// caller must hold s.mu.
func (s *Store) persistLocked() {
	if s.cache == nil {
		return
	}
	err := s.cache.ReplaceNotifications(
		context.Background(), s.notifications, s.unreadCount, s.lastFetched)
	if err != nil {
		logging.Warn("persisting notification cache", "err", err)
	}
}

// pushUpdate delivers the current unread count to the UI without
// blocking; a full channel drops the oldest update.
func (s *Store) pushUpdate() {
	s.mu.Lock()
	msg := UpdateMsg{UnreadCount: s.unreadCount}
	s.mu.Unlock()

	for {
		select {
		case s.updates <- msg:
			return
		default:
			select {
			case <-s.updates:
			default:
			}
		}
	}
}
