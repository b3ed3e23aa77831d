// Package analytics computes derived metrics over the ledger's current
// state. Everything here is a pure function over snapshots handed in by
// the caller; nothing holds state of its own, so results are always
// recomputed from the source of truth.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nadcreations/invoicious/internal/model"
)

// Pending summarizes invoices that still have money outstanding.
type Pending struct {
	Amount decimal.Decimal
	Count  int
}

// TimeTrackingStats summarizes tracked work.
type TimeTrackingStats struct {
	TotalHours    decimal.Decimal
	UnbilledValue decimal.Decimal
	EntryCount    int
	TimerRunning  bool
}

// TotalRevenue sums the totals of invoices whose stored status is paid.
func TotalRevenue(invoices []model.Invoice) decimal.Decimal {
	sum := decimal.Zero
	for _, inv := range invoices {
		if inv.Status == model.InvoiceStatusPaid {
			sum = sum.Add(inv.Total())
		}
	}
	return sum
}

// PendingInvoices counts invoices that are not fully paid and sums
// their remaining balances.
func PendingInvoices(invoices []model.Invoice) Pending {
	p := Pending{Amount: decimal.Zero}
	for _, inv := range invoices {
		if !inv.IsFullyPaid() {
			p.Count++
			p.Amount = p.Amount.Add(inv.RemainingBalance())
		}
	}
	return p
}

// OverdueCount counts invoices stored as overdue plus sent invoices
// past their due date.
func OverdueCount(invoices []model.Invoice, now time.Time) int {
	count := 0
	for _, inv := range invoices {
		if inv.Status == model.InvoiceStatusOverdue ||
			(inv.Status == model.InvoiceStatusSent && inv.DueDate.Before(now)) {
			count++
		}
	}
	return count
}

// monthWindow returns the calendar month boundaries containing t.
func monthWindow(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 1, 0)
	return start, end
}

// paidRevenueBetween sums payments recorded in [start, end) across
// paid invoices. Attribution is by payment date, not invoice creation
// date.
func paidRevenueBetween(invoices []model.Invoice, start, end time.Time) decimal.Decimal {
	sum := decimal.Zero
	for _, inv := range invoices {
		if inv.Status != model.InvoiceStatusPaid {
			continue
		}
		for _, p := range inv.Payments {
			if !p.Date.Before(start) && p.Date.Before(end) {
				sum = sum.Add(p.Amount)
			}
		}
	}
	return sum
}

// MonthToDateRevenue sums paid-invoice payments recorded since the
// start of the current calendar month.
func MonthToDateRevenue(invoices []model.Invoice, now time.Time) decimal.Decimal {
	start, _ := monthWindow(now)
	return paidRevenueBetween(invoices, start, now.Add(time.Nanosecond))
}

// MonthToDateInvoiceCount counts invoices issued since the start of
// the current calendar month.
func MonthToDateInvoiceCount(invoices []model.Invoice, now time.Time) int {
	start, _ := monthWindow(now)
	count := 0
	for _, inv := range invoices {
		if !inv.IssueDate.Before(start) && !inv.IssueDate.After(now) {
			count++
		}
	}
	return count
}

// RevenueGrowth returns the percent change of paid-invoice revenue
// between the current and prior calendar months. With no prior-month
// revenue the growth is 100 when the current month is positive, else 0.
func RevenueGrowth(invoices []model.Invoice, now time.Time) float64 {
	curStart, curEnd := monthWindow(now)
	priorStart, priorEnd := monthWindow(curStart.AddDate(0, 0, -1))

	current := paidRevenueBetween(invoices, curStart, curEnd)
	prior := paidRevenueBetween(invoices, priorStart, priorEnd)

	if prior.IsZero() {
		if current.GreaterThan(decimal.Zero) {
			return 100
		}
		return 0
	}

	growth, _ := current.Sub(prior).Div(prior).Mul(decimal.NewFromInt(100)).Float64()
	return growth
}

// EstimateConversionRate returns the percentage of resolved estimates
// (sent, accepted or declined) that were accepted, or 0 when no
// estimate has reached any of those states.
func EstimateConversionRate(estimates []model.Estimate) float64 {
	accepted, resolved := 0, 0
	for _, e := range estimates {
		switch e.Status {
		case model.EstimateStatusAccepted:
			accepted++
			resolved++
		case model.EstimateStatusSent, model.EstimateStatusDeclined:
			resolved++
		}
	}
	if resolved == 0 {
		return 0
	}
	return float64(accepted) / float64(resolved) * 100
}

// TimeTracking summarizes the given entries as of now.
func TimeTracking(entries []model.TimeEntry, now time.Time) TimeTrackingStats {
	stats := TimeTrackingStats{
		TotalHours:    decimal.Zero,
		UnbilledValue: decimal.Zero,
	}
	for _, te := range entries {
		stats.EntryCount++
		stats.TotalHours = stats.TotalHours.Add(te.Hours(now))
		stats.UnbilledValue = stats.UnbilledValue.Add(te.Total(now))
		if te.IsRunning {
			stats.TimerRunning = true
		}
	}
	return stats
}
