// Package store persists the client-side caches (notifications, cart,
// wishlist) to a local SQLite database so they survive restarts, in
// the same way the browser client kept them in durable storage.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
)

// cache_meta keys.
const (
	metaUnreadCount = "unread_count"
	metaLastFetched = "last_fetched"
)

// CacheStore implements the persisted client cache over SQLite.
type CacheStore struct {
	db *sqlx.DB
}

// NewCacheStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations. Pass
// ":memory:" for test databases.
func NewCacheStore(dbPath string) (*CacheStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &CacheStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *CacheStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *CacheStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// ReplaceNotifications swaps the persisted notification cache for the
// given snapshot, preserving the slice order.
func (s *CacheStore) ReplaceNotifications(
	ctx context.Context,
	notifications []model.Notification,
	unreadCount int,
	lastFetched time.Time,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM notifications"); err != nil {
		return fmt.Errorf("clearing notification cache: %w", err)
	}

	const query = `
		INSERT INTO notifications (
			id, user_id, user_role, type, title, message,
			is_read, is_email_sent, created_at, read_at,
			related_entity_id, related_entity_type,
			priority, action_url, position
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for i, n := range notifications {
		_, err := stmt.ExecContext(ctx,
			n.ID, n.UserID, n.UserRole, n.Type, n.Title, n.Message,
			n.Read, n.EmailSent, n.CreatedAt, n.ReadAt,
			n.RelatedEntityID, n.RelatedEntityType,
			n.Priority, n.ActionURL, i,
		)
		if err != nil {
			return fmt.Errorf("inserting notification %d: %w", n.ID, err)
		}
	}

	if err := setMetaTx(ctx, tx, metaUnreadCount, strconv.Itoa(unreadCount)); err != nil {
		return err
	}
	if err := setMetaTx(ctx, tx, metaLastFetched, lastFetched.UTC().Format(time.RFC3339Nano)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing notification cache: %w", err)
	}
	return nil
}

// LoadNotifications returns the persisted notification cache in its
// stored order, with the unread count and last-fetched timestamp. A
// never-populated cache yields an empty slice and zero time.
func (s *CacheStore) LoadNotifications(ctx context.Context) ([]model.Notification, int, time.Time, error) {
	var notifications []model.Notification
	err := s.db.SelectContext(ctx, &notifications,
		"SELECT id, user_id, user_role, type, title, message, is_read, is_email_sent, "+
			"created_at, read_at, related_entity_id, related_entity_type, priority, action_url "+
			"FROM notifications ORDER BY position ASC")
	if err != nil {
		return nil, 0, time.Time{}, fmt.Errorf("loading notification cache: %w", err)
	}

	unread := 0
	if raw, ok, err := s.getMeta(ctx, metaUnreadCount); err != nil {
		return nil, 0, time.Time{}, err
	} else if ok {
		unread, _ = strconv.Atoi(raw)
	}

	var lastFetched time.Time
	if raw, ok, err := s.getMeta(ctx, metaLastFetched); err != nil {
		return nil, 0, time.Time{}, err
	} else if ok {
		lastFetched, _ = time.Parse(time.RFC3339Nano, raw)
	}

	return notifications, unread, lastFetched, nil
}

// ReplaceCart swaps the persisted cart cache.
func (s *CacheStore) ReplaceCart(ctx context.Context, items []model.CartItem) error {
	return s.replaceItems(ctx, "cart_items", func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx,
			"INSERT INTO cart_items (id, quantity, product_json, position) VALUES (?, ?, ?, ?)")
		if err != nil {
			return fmt.Errorf("preparing cart insert: %w", err)
		}
		defer stmt.Close()

		for i, item := range items {
			raw, err := json.Marshal(item.Product)
			if err != nil {
				return fmt.Errorf("marshaling cart product: %w", err)
			}
			if _, err := stmt.ExecContext(ctx, item.ID, item.Quantity, string(raw), i); err != nil {
				return fmt.Errorf("inserting cart item %d: %w", item.ID, err)
			}
		}
		return nil
	})
}

// LoadCart returns the persisted cart cache in its stored order.
func (s *CacheStore) LoadCart(ctx context.Context) ([]model.CartItem, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, quantity, product_json FROM cart_items ORDER BY position ASC")
	if err != nil {
		return nil, fmt.Errorf("loading cart cache: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var (
			item model.CartItem
			raw  string
		)
		if err := rows.Scan(&item.ID, &item.Quantity, &raw); err != nil {
			return nil, fmt.Errorf("scanning cart item: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &item.Product); err != nil {
			return nil, fmt.Errorf("unmarshaling cart product: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ReplaceWishlist swaps the persisted wishlist cache.
func (s *CacheStore) ReplaceWishlist(ctx context.Context, items []model.WishlistItem) error {
	return s.replaceItems(ctx, "wishlist_items", func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx,
			"INSERT INTO wishlist_items (id, product_json, position) VALUES (?, ?, ?)")
		if err != nil {
			return fmt.Errorf("preparing wishlist insert: %w", err)
		}
		defer stmt.Close()

		for i, item := range items {
			raw, err := json.Marshal(item.Product)
			if err != nil {
				return fmt.Errorf("marshaling wishlist product: %w", err)
			}
			if _, err := stmt.ExecContext(ctx, item.ID, string(raw), i); err != nil {
				return fmt.Errorf("inserting wishlist item %d: %w", item.ID, err)
			}
		}
		return nil
	})
}

// LoadWishlist returns the persisted wishlist cache in its stored order.
func (s *CacheStore) LoadWishlist(ctx context.Context) ([]model.WishlistItem, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, product_json FROM wishlist_items ORDER BY position ASC")
	if err != nil {
		return nil, fmt.Errorf("loading wishlist cache: %w", err)
	}
	defer rows.Close()

	var items []model.WishlistItem
	for rows.Next() {
		var (
			item model.WishlistItem
			raw  string
		)
		if err := rows.Scan(&item.ID, &raw); err != nil {
			return nil, fmt.Errorf("scanning wishlist item: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &item.Product); err != nil {
			return nil, fmt.Errorf("unmarshaling wishlist product: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Clear wipes every cached table. Called on logout so the next user
// on this machine does not inherit the previous user's data.
func (s *CacheStore) Clear(ctx context.Context) error {
	for _, table := range []string{"notifications", "cart_items", "wishlist_items", "cache_meta"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// replaceItems runs delete-then-insert for a cache table in one
// transaction.
func (s *CacheStore) replaceItems(ctx context.Context, table string, insert func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}
	if err := insert(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", table, err)
	}
	return nil
}

func setMetaTx(ctx context.Context, tx *sqlx.Tx, key, value string) error {
	_, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO cache_meta (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		return fmt.Errorf("writing cache meta %s: %w", key, err)
	}
	return nil
}

func (s *CacheStore) getMeta(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT value FROM cache_meta WHERE key = ?", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading cache meta %s: %w", key, err)
	}
	return value, true, nil
}
