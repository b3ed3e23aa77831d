package ledger

import (
	"github.com/nadcreations/invoicious/internal/model"
	"github.com/nadcreations/invoicious/internal/storage"
)

// BusinessInfo returns the singleton business profile.
func (s *Store) BusinessInfo() model.BusinessInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.business
}

// SetBusinessInfo replaces the business profile and persists it.
func (s *Store) SetBusinessInfo(b model.BusinessInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.business = b
	s.persist(storage.KeyBusinessInfo, s.business)
}
