package ledger

import (
	"strings"

	"github.com/nadcreations/invoicious/internal/common"
	"github.com/nadcreations/invoicious/internal/model"
	"github.com/nadcreations/invoicious/internal/storage"
)

// AddClient validates and appends a client, persisting immediately.
// A name is required; entities themselves never enforce this.
func (s *Store) AddClient(c model.Client) error {
	if strings.TrimSpace(c.Name) == "" {
		return common.NewUserError("client name is required", common.ErrNameRequired)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients = append(s.clients, c)
	s.persist(storage.KeyClients, s.clients)
	return nil
}

// UpdateClient replaces the client with a matching id. Returns false
// when nothing matched; no error is raised.
func (s *Store) UpdateClient(c model.Client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.clients {
		if s.clients[i].ID == c.ID {
			s.clients[i] = c
			found = true
		}
	}
	if found {
		s.persist(storage.KeyClients, s.clients)
	}
	return found
}

// DeleteClient removes the client by id. Invoices and estimates keep
// their owned client snapshots; weak references elsewhere are left
// dangling for readers to treat as absent.
func (s *Store) DeleteClient(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.clients[:0]
	found := false
	for _, c := range s.clients {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	s.clients = kept
	if found {
		s.persist(storage.KeyClients, s.clients)
	}
	return found
}

// GetClient returns the client by id.
func (s *Store) GetClient(id string) (model.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.clients {
		if c.ID == id {
			return c, true
		}
	}
	return model.Client{}, false
}

// Clients returns a copy of the client collection.
func (s *Store) Clients() []model.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Client, len(s.clients))
	copy(out, s.clients)
	return out
}
