package ledger

import (
	"strings"

	"github.com/nadcreations/invoicious/internal/common"
	"github.com/nadcreations/invoicious/internal/model"
	"github.com/nadcreations/invoicious/internal/storage"
)

// AddProject validates and appends a project.
func (s *Store) AddProject(p model.Project) error {
	if strings.TrimSpace(p.Name) == "" {
		return common.NewUserError("project name is required", common.ErrNameRequired)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects = append(s.projects, p)
	s.persist(storage.KeyProjects, s.projects)
	return nil
}

// UpdateProject replaces the project with a matching id. Returns false
// when nothing matched.
func (s *Store) UpdateProject(p model.Project) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.projects {
		if s.projects[i].ID == p.ID {
			s.projects[i] = p
			found = true
		}
	}
	if found {
		s.persist(storage.KeyProjects, s.projects)
	}
	return found
}

// DeleteProject removes the project by id. If the project owns the
// active time entry, the timer is stopped first.
func (s *Store) DeleteProject(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var target *model.Project
	for i := range s.projects {
		if s.projects[i].ID == id {
			target = &s.projects[i]
			break
		}
	}
	if target == nil {
		return false
	}

	for _, te := range target.Entries {
		if te.ID == s.activeEntryID {
			s.stopTimerLocked()
			s.persist(storage.KeyTimeEntries, s.timeEntries)
			break
		}
	}

	kept := s.projects[:0]
	for _, p := range s.projects {
		if p.ID == id {
			continue
		}
		kept = append(kept, p)
	}
	s.projects = kept
	s.persist(storage.KeyProjects, s.projects)
	return true
}

// GetProject returns the project by id.
func (s *Store) GetProject(id string) (model.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

// Projects returns a copy of the project collection.
func (s *Store) Projects() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Project, len(s.projects))
	copy(out, s.projects)
	return out
}
