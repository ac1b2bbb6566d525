package testutil

import (
	"testing"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/store"
)

// NewTestStore creates an in-memory CacheStore with all migrations
// applied. It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.CacheStore {
	t.Helper()

	s, err := store.NewCacheStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}
