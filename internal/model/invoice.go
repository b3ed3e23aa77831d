package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the persisted lifecycle status of an invoice. The
// displayed status is derived separately; see Invoice.EffectiveStatus.
type InvoiceStatus string

// Invoice status constants.
const (
	InvoiceStatusDraft         InvoiceStatus = "draft"
	InvoiceStatusSent          InvoiceStatus = "sent"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
	InvoiceStatusCancelled     InvoiceStatus = "cancelled"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially-paid"
)

// DefaultTaxRate is applied to new invoices and estimates unless overridden.
var DefaultTaxRate = decimal.NewFromFloat(0.10)

// Invoice represents a bill issued to a client. The client is an owned
// snapshot, not a reference: editing or deleting the client later never
// changes an invoice that was already issued.
type Invoice struct {
	IssueDate       time.Time       `json:"issueDate"`
	DueDate         time.Time       `json:"dueDate"`
	CreatedAt       time.Time       `json:"createdAt"`
	SentDate        *time.Time      `json:"sentDate,omitempty"`
	LastViewedDate  *time.Time      `json:"lastViewedDate,omitempty"`
	ID              string          `json:"id"`
	Number          string          `json:"number"`
	Notes           string          `json:"notes"`
	TemplateID      string          `json:"templateId"`
	Status          InvoiceStatus   `json:"status"`
	Client          Client          `json:"client"`
	LineItems       []LineItem      `json:"lineItems"`
	Payments        []Payment       `json:"payments"`
	EmailRecords    []EmailRecord   `json:"emailRecords"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	ViewCount       int             `json:"viewCount"`
	DownloadCount   int             `json:"downloadCount"`
	TrackingEnabled bool            `json:"trackingEnabled"`
}

// NewInvoice creates a draft invoice for a client with a generated
// number, due 30 days out, at the default tax rate.
func NewInvoice(client Client) Invoice {
	now := time.Now()
	return Invoice{
		ID:              uuid.NewString(),
		Number:          fmt.Sprintf("INV-%d", now.Unix()),
		Client:          client,
		IssueDate:       now,
		DueDate:         now.AddDate(0, 0, 30),
		Status:          InvoiceStatusDraft,
		TaxRate:         DefaultTaxRate,
		TrackingEnabled: true,
		CreatedAt:       now,
	}
}

// Subtotal sums the line item totals.
func (inv Invoice) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, li := range inv.LineItems {
		sum = sum.Add(li.Total())
	}
	return sum
}

// TaxAmount returns subtotal × tax rate.
func (inv Invoice) TaxAmount() decimal.Decimal {
	return inv.Subtotal().Mul(inv.TaxRate)
}

// Total returns subtotal + tax.
func (inv Invoice) Total() decimal.Decimal {
	return inv.Subtotal().Add(inv.TaxAmount())
}

// TotalPaid sums the recorded payments.
func (inv Invoice) TotalPaid() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range inv.Payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}

// RemainingBalance returns total − total paid.
func (inv Invoice) RemainingBalance() decimal.Decimal {
	return inv.Total().Sub(inv.TotalPaid())
}

// IsFullyPaid reports whether the remaining balance is zero or negative.
func (inv Invoice) IsFullyPaid() bool {
	return inv.RemainingBalance().LessThanOrEqual(decimal.Zero)
}

// IsPartiallyPaid reports whether some but not all of the total has
// been paid.
func (inv Invoice) IsPartiallyPaid() bool {
	paid := inv.TotalPaid()
	return paid.GreaterThan(decimal.Zero) && paid.LessThan(inv.Total())
}

// IsOverdue reports whether a sent, unpaid invoice has passed its due
// date as of now.
func (inv Invoice) IsOverdue(now time.Time) bool {
	return inv.Status == InvoiceStatusSent && inv.DueDate.Before(now) && !inv.IsFullyPaid()
}

// EffectiveStatus resolves the status to display or report, overriding
// the stored status from payment and due-date facts without mutating
// it. Precedence: paid, then partially paid, then overdue, then the
// stored status.
func (inv Invoice) EffectiveStatus(now time.Time) InvoiceStatus {
	switch {
	case inv.IsFullyPaid():
		return InvoiceStatusPaid
	case inv.IsPartiallyPaid():
		return InvoiceStatusPartiallyPaid
	case inv.IsOverdue(now):
		return InvoiceStatusOverdue
	default:
		return inv.Status
	}
}

// CloneLineItems returns a deep copy of the invoice's line items with
// fresh identifiers, for building a new invoice from this one.
func (inv Invoice) CloneLineItems() []LineItem {
	if len(inv.LineItems) == 0 {
		return nil
	}
	items := make([]LineItem, 0, len(inv.LineItems))
	for _, li := range inv.LineItems {
		items = append(items, NewLineItem(li.Description, li.Quantity, li.UnitPrice))
	}
	return items
}
