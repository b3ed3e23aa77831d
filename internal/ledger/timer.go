package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nadcreations/invoicious/internal/model"
	"github.com/nadcreations/invoicious/internal/storage"
)

// fallbackGroupLabel names a billing group whose entries carry neither
// a project name nor a description.
const fallbackGroupLabel = "Time entry"

// StartTimer begins tracking a new entry. If a timer is already
// running it is stopped first; the store never holds two running
// entries.
func (s *Store) StartTimer(description string, hourlyRate decimal.Decimal, projectName, clientID string) model.TimeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()

	te := model.NewTimeEntry(description, hourlyRate, projectName, clientID)
	te.StartTime = s.now()
	s.timeEntries = append(s.timeEntries, te)
	s.activeEntryID = te.ID
	s.persist(storage.KeyTimeEntries, s.timeEntries)
	s.syncProjectEntryLocked(te)
	return te
}

// syncProjectEntryLocked mirrors a time entry into the project that
// owns it, matched by project name. The store's flat collection stays
// canonical; the project copy keeps per-project aggregates current.
func (s *Store) syncProjectEntryLocked(te model.TimeEntry) {
	if te.ProjectName == "" {
		return
	}
	for i := range s.projects {
		if s.projects[i].Name != te.ProjectName {
			continue
		}
		replaced := false
		for j := range s.projects[i].Entries {
			if s.projects[i].Entries[j].ID == te.ID {
				s.projects[i].Entries[j] = te
				replaced = true
				break
			}
		}
		if !replaced {
			s.projects[i].Entries = append(s.projects[i].Entries, te)
		}
		s.persist(storage.KeyProjects, s.projects)
		return
	}
}

// removeProjectEntryLocked drops a deleted entry from whichever
// project mirrors it.
func (s *Store) removeProjectEntryLocked(id string) {
	for i := range s.projects {
		for j := range s.projects[i].Entries {
			if s.projects[i].Entries[j].ID == id {
				s.projects[i].Entries = append(s.projects[i].Entries[:j], s.projects[i].Entries[j+1:]...)
				s.persist(storage.KeyProjects, s.projects)
				return
			}
		}
	}
}

// StopTimer ends the running entry, if any. Returns the stopped entry
// and false when nothing was running.
func (s *Store) StopTimer() (model.TimeEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stopped, ok := s.stopTimerLocked()
	if ok {
		s.persist(storage.KeyTimeEntries, s.timeEntries)
	}
	return stopped, ok
}

func (s *Store) stopTimerLocked() (model.TimeEntry, bool) {
	if s.activeEntryID == "" {
		return model.TimeEntry{}, false
	}
	for i := range s.timeEntries {
		if s.timeEntries[i].ID == s.activeEntryID && s.timeEntries[i].IsRunning {
			end := s.now()
			s.timeEntries[i].EndTime = &end
			s.timeEntries[i].IsRunning = false
			s.activeEntryID = ""
			s.syncProjectEntryLocked(s.timeEntries[i])
			return s.timeEntries[i], true
		}
	}
	s.activeEntryID = ""
	return model.TimeEntry{}, false
}

// ActiveEntry returns the running entry, if any. Its duration accrues
// by recomputation against the wall clock on every read.
func (s *Store) ActiveEntry() (model.TimeEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeEntryID == "" {
		return model.TimeEntry{}, false
	}
	for _, te := range s.timeEntries {
		if te.ID == s.activeEntryID {
			return te, true
		}
	}
	return model.TimeEntry{}, false
}

// UpdateTimeEntry replaces the entry by id. An entry updated to
// running becomes the active reference; keeping the single-running
// invariant across such updates is the caller's responsibility.
func (s *Store) UpdateTimeEntry(te model.TimeEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.timeEntries {
		if s.timeEntries[i].ID == te.ID {
			s.timeEntries[i] = te
			found = true
		}
	}
	if found {
		if te.IsRunning {
			s.activeEntryID = te.ID
		} else if s.activeEntryID == te.ID {
			s.activeEntryID = ""
		}
		s.persist(storage.KeyTimeEntries, s.timeEntries)
		s.removeProjectEntryLocked(te.ID)
		s.syncProjectEntryLocked(te)
	}
	return found
}

// DeleteTimeEntry removes the entry by id, stopping it first when it
// is the active one.
func (s *Store) DeleteTimeEntry(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeEntryID == id {
		s.stopTimerLocked()
	}

	kept := s.timeEntries[:0]
	found := false
	for _, te := range s.timeEntries {
		if te.ID == id {
			found = true
			continue
		}
		kept = append(kept, te)
	}
	s.timeEntries = kept
	if found {
		s.persist(storage.KeyTimeEntries, s.timeEntries)
		s.removeProjectEntryLocked(id)
	}
	return found
}

// TimeEntries returns a copy of the time entry collection.
func (s *Store) TimeEntries() []model.TimeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.TimeEntry, len(s.timeEntries))
	copy(out, s.timeEntries)
	return out
}

// LineItemsFromEntries converts time entries into invoice line items.
// Entries are partitioned by project name, falling back to description
// for entries without one. Each group yields one line item whose
// quantity is the summed hours and whose unit price is the arithmetic
// mean of the group's hourly rates. The mean is deliberately unweighted;
// that is the conversion policy, not an oversight.
func LineItemsFromEntries(entries []model.TimeEntry, now time.Time) []model.LineItem {
	groups := make(map[string][]model.TimeEntry)
	for _, te := range entries {
		key := te.ProjectName
		if key == "" {
			key = te.Description
		}
		if key == "" {
			key = fallbackGroupLabel
		}
		groups[key] = append(groups[key], te)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]model.LineItem, 0, len(groups))
	for _, key := range keys {
		group := groups[key]
		hours := decimal.Zero
		rateSum := decimal.Zero
		for _, te := range group {
			hours = hours.Add(te.Hours(now))
			rateSum = rateSum.Add(te.HourlyRate)
		}
		meanRate := rateSum.Div(decimal.NewFromInt(int64(len(group))))
		items = append(items, model.NewLineItem(key, hours, meanRate))
	}
	return items
}
