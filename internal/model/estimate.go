package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstimateStatus is the persisted lifecycle status of an estimate.
type EstimateStatus string

// Estimate status constants.
const (
	EstimateStatusDraft    EstimateStatus = "draft"
	EstimateStatusSent     EstimateStatus = "sent"
	EstimateStatusAccepted EstimateStatus = "accepted"
	EstimateStatusDeclined EstimateStatus = "declined"
	EstimateStatusExpired  EstimateStatus = "expired"
)

// Estimate represents a quote offered to a client before invoicing.
// Like Invoice, the client is an owned snapshot.
type Estimate struct {
	IssueDate  time.Time       `json:"issueDate"`
	ValidUntil time.Time       `json:"validUntil"`
	CreatedAt  time.Time       `json:"createdAt"`
	ID         string          `json:"id"`
	Number     string          `json:"number"`
	Notes      string          `json:"notes"`
	Status     EstimateStatus  `json:"status"`
	Client     Client          `json:"client"`
	LineItems  []LineItem      `json:"lineItems"`
	TaxRate    decimal.Decimal `json:"taxRate"`
}

// NewEstimate creates a draft estimate valid for 30 days.
func NewEstimate(client Client) Estimate {
	now := time.Now()
	return Estimate{
		ID:         uuid.NewString(),
		Number:     fmt.Sprintf("EST-%d", now.Unix()),
		Client:     client,
		IssueDate:  now,
		ValidUntil: now.AddDate(0, 0, 30),
		Status:     EstimateStatusDraft,
		TaxRate:    DefaultTaxRate,
		CreatedAt:  now,
	}
}

// Subtotal sums the line item totals.
func (e Estimate) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, li := range e.LineItems {
		sum = sum.Add(li.Total())
	}
	return sum
}

// TaxAmount returns subtotal × tax rate.
func (e Estimate) TaxAmount() decimal.Decimal {
	return e.Subtotal().Mul(e.TaxRate)
}

// Total returns subtotal + tax.
func (e Estimate) Total() decimal.Decimal {
	return e.Subtotal().Add(e.TaxAmount())
}

// IsExpired reports whether the estimate's validity window has passed.
func (e Estimate) IsExpired(now time.Time) bool {
	return now.After(e.ValidUntil)
}

// EffectiveStatus returns expired for a lapsed estimate that was never
// resolved, otherwise the stored status. Accepted and declined are
// terminal and never overridden.
func (e Estimate) EffectiveStatus(now time.Time) EstimateStatus {
	if e.IsExpired(now) && e.Status != EstimateStatusAccepted && e.Status != EstimateStatusDeclined {
		return EstimateStatusExpired
	}
	return e.Status
}
