// Package testutil provides test fixtures for the billing ledger:
// isolated in-memory stores and a controllable clock.
package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/nadcreations/invoicious/internal/ledger"
	"github.com/nadcreations/invoicious/internal/storage"
)

// SetupStore creates an isolated ledger store backed by an in-memory
// SQLite snapshot database, cleaned up with the test.
func SetupStore(t *testing.T, opts ...ledger.Option) *ledger.Store {
	t.Helper()

	snaps, err := storage.NewSnapshotStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create snapshot store: %v", err)
	}
	t.Cleanup(func() {
		if err := snaps.Close(); err != nil {
			t.Errorf("failed to close snapshot store: %v", err)
		}
	})

	return ledger.New(snaps, opts...)
}

// SetupStoreAt is SetupStore with the store's clock pinned to a Clock.
func SetupStoreAt(t *testing.T, clock *Clock) *ledger.Store {
	t.Helper()
	return SetupStore(t, ledger.WithClock(clock.Now))
}

// Clock is a controllable time source for temporal logic under test.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock frozen at now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the clock's current time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set pins the clock to t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
