package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nadcreations/invoicious/internal/common"
	"github.com/nadcreations/invoicious/internal/model"
	"github.com/nadcreations/invoicious/internal/storage"
)

// AddInvoice appends an invoice and persists the collection.
func (s *Store) AddInvoice(inv model.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoices = append(s.invoices, inv)
	s.persist(storage.KeyInvoices, s.invoices)
}

// UpdateInvoice replaces the invoice with a matching id. Returns false
// when nothing matched.
func (s *Store) UpdateInvoice(inv model.Invoice) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateInvoiceLocked(inv)
}

func (s *Store) updateInvoiceLocked(inv model.Invoice) bool {
	found := false
	for i := range s.invoices {
		if s.invoices[i].ID == inv.ID {
			s.invoices[i] = inv
			found = true
		}
	}
	if found {
		s.persist(storage.KeyInvoices, s.invoices)
	}
	return found
}

// DeleteInvoice removes the invoice by id.
func (s *Store) DeleteInvoice(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.invoices[:0]
	found := false
	for _, inv := range s.invoices {
		if inv.ID == id {
			found = true
			continue
		}
		kept = append(kept, inv)
	}
	s.invoices = kept
	if found {
		s.persist(storage.KeyInvoices, s.invoices)
	}
	return found
}

// GetInvoice returns the invoice by id.
func (s *Store) GetInvoice(id string) (model.Invoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getInvoiceLocked(id)
}

func (s *Store) getInvoiceLocked(id string) (model.Invoice, bool) {
	for _, inv := range s.invoices {
		if inv.ID == id {
			return inv, true
		}
	}
	return model.Invoice{}, false
}

// Invoices returns a copy of the invoice collection.
func (s *Store) Invoices() []model.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out
}

// InvoiceCount returns the number of invoices, used by the free-tier
// entitlement gate.
func (s *Store) InvoiceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.invoices)
}

// RecordPayment validates and applies a payment to an invoice:
// the amount must be positive and must not exceed the remaining
// balance. On success the stored status is updated to paid or
// partially-paid to match the new payment facts.
func (s *Store) RecordPayment(invoiceID string, p model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.getInvoiceLocked(invoiceID)
	if !ok {
		return common.NewUserError("invoice not found", common.ErrNotFound)
	}
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return common.NewUserError("payment amount must be positive", common.ErrInvalidAmount)
	}
	if p.Amount.GreaterThan(inv.RemainingBalance()) {
		return common.NewUserError("payment exceeds remaining balance", common.ErrOverpayment)
	}

	inv.Payments = append(inv.Payments, p)
	if inv.IsFullyPaid() {
		inv.Status = model.InvoiceStatusPaid
	} else {
		inv.Status = model.InvoiceStatusPartiallyPaid
	}
	s.updateInvoiceLocked(inv)
	return nil
}

// RecordEmailSent appends a send record, stamps the first sent date,
// and promotes a draft invoice to sent. Returns false when the invoice
// does not exist.
func (s *Store) RecordEmailSent(invoiceID string, rec model.EmailRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.getInvoiceLocked(invoiceID)
	if !ok {
		return false
	}

	inv.EmailRecords = append(inv.EmailRecords, rec)
	sentAt := rec.SentAt
	inv.SentDate = &sentAt
	if inv.Status == model.InvoiceStatusDraft {
		inv.Status = model.InvoiceStatusSent
	}
	return s.updateInvoiceLocked(inv)
}

// RecordViewed increments the view counter and back-fills the most
// recent email record's opened state when it has not been set yet.
func (s *Store) RecordViewed(invoiceID string, when time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.getInvoiceLocked(invoiceID)
	if !ok {
		return false
	}

	inv.ViewCount++
	viewed := when
	inv.LastViewedDate = &viewed
	if n := len(inv.EmailRecords); n > 0 {
		last := &inv.EmailRecords[n-1]
		if last.OpenedAt == nil {
			opened := when
			last.OpenedAt = &opened
			last.Status = model.EmailStatusOpened
		}
	}
	return s.updateInvoiceLocked(inv)
}

// RecordDownloaded increments the download counter and stamps the most
// recent email record's download time when it has not been set yet.
func (s *Store) RecordDownloaded(invoiceID string, when time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.getInvoiceLocked(invoiceID)
	if !ok {
		return false
	}

	inv.DownloadCount++
	if n := len(inv.EmailRecords); n > 0 {
		last := &inv.EmailRecords[n-1]
		if last.DownloadedAt == nil {
			downloaded := when
			last.DownloadedAt = &downloaded
		}
	}
	return s.updateInvoiceLocked(inv)
}
