package ledger

import (
	"github.com/nadcreations/invoicious/internal/common"
	"github.com/nadcreations/invoicious/internal/model"
	"github.com/nadcreations/invoicious/internal/storage"
)

// AddEstimate appends an estimate and persists the collection.
func (s *Store) AddEstimate(e model.Estimate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.estimates = append(s.estimates, e)
	s.persist(storage.KeyEstimates, s.estimates)
}

// UpdateEstimate replaces the estimate with a matching id. Returns
// false when nothing matched.
func (s *Store) UpdateEstimate(e model.Estimate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateEstimateLocked(e)
}

func (s *Store) updateEstimateLocked(e model.Estimate) bool {
	found := false
	for i := range s.estimates {
		if s.estimates[i].ID == e.ID {
			s.estimates[i] = e
			found = true
		}
	}
	if found {
		s.persist(storage.KeyEstimates, s.estimates)
	}
	return found
}

// DeleteEstimate removes the estimate by id.
func (s *Store) DeleteEstimate(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.estimates[:0]
	found := false
	for _, e := range s.estimates {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	s.estimates = kept
	if found {
		s.persist(storage.KeyEstimates, s.estimates)
	}
	return found
}

// GetEstimate returns the estimate by id.
func (s *Store) GetEstimate(id string) (model.Estimate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.estimates {
		if e.ID == id {
			return e, true
		}
	}
	return model.Estimate{}, false
}

// Estimates returns a copy of the estimate collection.
func (s *Store) Estimates() []model.Estimate {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Estimate, len(s.estimates))
	copy(out, s.estimates)
	return out
}

// ConvertEstimate turns an estimate into a fresh draft invoice sharing
// its client, line items, notes, and tax rate, due 30 days from now.
// The source estimate's status becomes accepted. Both changes and the
// new invoice are applied under one lock.
func (s *Store) ConvertEstimate(estimateID string) (model.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var src *model.Estimate
	for i := range s.estimates {
		if s.estimates[i].ID == estimateID {
			src = &s.estimates[i]
			break
		}
	}
	if src == nil {
		return model.Invoice{}, common.NewUserError("estimate not found", common.ErrNotFound)
	}

	now := s.now()
	inv := model.NewInvoice(src.Client)
	inv.IssueDate = now
	inv.DueDate = now.AddDate(0, 0, 30)
	inv.Notes = src.Notes
	inv.TaxRate = src.TaxRate
	items := make([]model.LineItem, len(src.LineItems))
	copy(items, src.LineItems)
	inv.LineItems = items

	src.Status = model.EstimateStatusAccepted

	s.invoices = append(s.invoices, inv)
	s.persist(storage.KeyInvoices, s.invoices)
	s.persist(storage.KeyEstimates, s.estimates)
	return inv, nil
}
