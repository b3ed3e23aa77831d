// Package ledger holds the authoritative in-memory collections of the
// billing domain. A single Store is constructed at process start and
// injected into every consumer; one mutex serializes all mutations,
// foreground commands and the recurring scheduler alike. Every mutation
// re-encodes the affected collection to the snapshot store synchronously.
package ledger

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/nadcreations/invoicious/internal/common"
	"github.com/nadcreations/invoicious/internal/model"
	"github.com/nadcreations/invoicious/internal/storage"
)

// Snapshots is the persistence surface the store writes through. It is
// satisfied by storage.SnapshotStore.
type Snapshots interface {
	Save(key string, data []byte) error
	Load(key string) ([]byte, error)
	DeleteAll() error
}

// Store is the single source of truth for all entities.
type Store struct {
	snaps Snapshots
	now   func() time.Time

	mu                sync.Mutex
	clients           []model.Client
	invoices          []model.Invoice
	estimates         []model.Estimate
	timeEntries       []model.TimeEntry
	projects          []model.Project
	recurringInvoices []model.RecurringInvoice
	business          model.BusinessInfo
	activeEntryID     string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the store's wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New constructs a Store and loads every collection from the snapshot
// store. Each collection loads independently: a missing or corrupt
// blob yields that collection empty without affecting the others.
func New(snaps Snapshots, opts ...Option) *Store {
	s := &Store{
		snaps:    snaps,
		now:      time.Now,
		business: model.DefaultBusinessInfo(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.clients = loadCollection[model.Client](snaps, storage.KeyClients)
	s.invoices = loadCollection[model.Invoice](snaps, storage.KeyInvoices)
	s.estimates = loadCollection[model.Estimate](snaps, storage.KeyEstimates)
	s.timeEntries = loadCollection[model.TimeEntry](snaps, storage.KeyTimeEntries)
	s.projects = loadCollection[model.Project](snaps, storage.KeyProjects)
	s.recurringInvoices = loadCollection[model.RecurringInvoice](snaps, storage.KeyRecurringInvoices)

	if data, err := snaps.Load(storage.KeyBusinessInfo); err == nil && len(data) > 0 {
		var b model.BusinessInfo
		if err := json.Unmarshal(data, &b); err == nil {
			s.business = b
		} else {
			common.LogError(err, "business info snapshot corrupt, using defaults", nil)
		}
	}

	// Restore the active timer reference from whatever was running
	// when the process last exited.
	for _, te := range s.timeEntries {
		if te.IsRunning {
			s.activeEntryID = te.ID
			break
		}
	}

	return s
}

// loadCollection decodes one collection blob. Missing keys and decode
// failures both read back as empty; decode failures are logged.
func loadCollection[T any](snaps Snapshots, key string) []T {
	data, err := snaps.Load(key)
	if err != nil {
		common.LogError(err, "failed to load snapshot, using empty collection", common.Fields{"key": key})
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		common.LogError(err, "snapshot corrupt, using empty collection", common.Fields{"key": key})
		return nil
	}
	return items
}

// persist encodes value under key. Write failures are logged and
// dropped: persistence is best effort, local-first.
func (s *Store) persist(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		common.LogError(err, "failed to encode snapshot", common.Fields{"key": key})
		return
	}
	if err := s.snaps.Save(key, data); err != nil {
		common.LogError(err, "failed to persist snapshot", common.Fields{"key": key})
	}
}

// Now returns the store's current wall-clock time.
func (s *Store) Now() time.Time {
	return s.now()
}

// EraseAll clears every collection, resets the business profile to
// defaults, and deletes every persisted blob. Performed under the
// store lock so no partial wipe is observable.
func (s *Store) EraseAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients = nil
	s.invoices = nil
	s.estimates = nil
	s.timeEntries = nil
	s.projects = nil
	s.recurringInvoices = nil
	s.business = model.DefaultBusinessInfo()
	s.activeEntryID = ""

	if err := s.snaps.DeleteAll(); err != nil {
		return common.NewUserError("failed to erase persisted data", err)
	}
	return nil
}
