package testutil

import (
	"testing"

	"github.com/promanager/promanager/internal/cache"
)

// NewTestCache creates an in-memory SQLiteCache with all migrations applied.
// It automatically closes the cache when the test completes.
func NewTestCache(t *testing.T) *cache.SQLiteCache {
	t.Helper()

	c, err := cache.NewSQLiteCache(cache.InMemory)
	if err != nil {
		t.Fatalf("creating test cache: %v", err)
	}

	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("closing test cache: %v", err)
		}
	})

	return c
}
