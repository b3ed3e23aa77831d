package ledger

import (
	"time"

	"github.com/nadcreations/invoicious/internal/model"
	"github.com/nadcreations/invoicious/internal/storage"
)

// AddRecurringInvoice appends a schedule and persists the collection.
func (s *Store) AddRecurringInvoice(r model.RecurringInvoice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recurringInvoices = append(s.recurringInvoices, r)
	s.persist(storage.KeyRecurringInvoices, s.recurringInvoices)
}

// UpdateRecurringInvoice replaces the schedule with a matching id.
// Returns false when nothing matched.
func (s *Store) UpdateRecurringInvoice(r model.RecurringInvoice) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateRecurringLocked(r)
}

func (s *Store) updateRecurringLocked(r model.RecurringInvoice) bool {
	found := false
	for i := range s.recurringInvoices {
		if s.recurringInvoices[i].ID == r.ID {
			s.recurringInvoices[i] = r
			found = true
		}
	}
	if found {
		s.persist(storage.KeyRecurringInvoices, s.recurringInvoices)
	}
	return found
}

// DeleteRecurringInvoice removes the schedule by id. Invoices it
// generated remain; their ids simply dangle.
func (s *Store) DeleteRecurringInvoice(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.recurringInvoices[:0]
	found := false
	for _, r := range s.recurringInvoices {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	s.recurringInvoices = kept
	if found {
		s.persist(storage.KeyRecurringInvoices, s.recurringInvoices)
	}
	return found
}

// GetRecurringInvoice returns the schedule by id.
func (s *Store) GetRecurringInvoice(id string) (model.RecurringInvoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.recurringInvoices {
		if r.ID == id {
			return r, true
		}
	}
	return model.RecurringInvoice{}, false
}

// RecurringInvoices returns a copy of the schedule collection.
func (s *Store) RecurringInvoices() []model.RecurringInvoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.RecurringInvoice, len(s.recurringInvoices))
	copy(out, s.recurringInvoices)
	return out
}

// DueRecurringInvoices returns copies of the schedules due as of now.
func (s *Store) DueRecurringInvoices(now time.Time) []model.RecurringInvoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []model.RecurringInvoice
	for _, r := range s.recurringInvoices {
		if r.IsDue(now) {
			due = append(due, r)
		}
	}
	return due
}

// CommitGeneration applies one scheduler generation atomically: the
// new invoice is appended and the advanced schedule replaces its
// predecessor under a single lock acquisition, so a schedule is never
// observed advanced without its invoice or vice versa. Returns false,
// applying nothing, when the schedule no longer exists.
func (s *Store) CommitGeneration(sched model.RecurringInvoice, inv model.Invoice) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.recurringInvoices {
		if s.recurringInvoices[i].ID == sched.ID {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	s.invoices = append(s.invoices, inv)
	s.persist(storage.KeyInvoices, s.invoices)
	s.updateRecurringLocked(sched)
	return true
}
