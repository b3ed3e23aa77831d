// Package recurring converts recurring-invoice schedules into concrete
// invoices. Evaluation is idempotent against repeated runs: once a
// schedule generates, its next due date has moved past now, so a second
// pass in the same instant produces nothing.
package recurring

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nadcreations/invoicious/internal/common"
	"github.com/nadcreations/invoicious/internal/model"
)

// Ledger is the slice of the store the scheduler needs.
type Ledger interface {
	DueRecurringInvoices(now time.Time) []model.RecurringInvoice
	CommitGeneration(sched model.RecurringInvoice, inv model.Invoice) bool
}

// Scheduler evaluates due schedules on a timer and on demand. Both
// paths produce identical results for the same input state.
type Scheduler struct {
	ledger Ledger
	now    func() time.Time
	cron   *cron.Cron
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the scheduler's wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// NewScheduler creates a scheduler over the given ledger.
func NewScheduler(ledger Ledger, opts ...Option) *Scheduler {
	s := &Scheduler{
		ledger: ledger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs one evaluation pass immediately, then hourly until the
// context is cancelled. The trigger is fire-and-forget: passes are
// infrequent relative to their cost, so no backpressure is needed.
func (s *Scheduler) Start(ctx context.Context) {
	s.Evaluate(ctx)

	s.cron = cron.New()
	_, _ = s.cron.AddFunc("@hourly", func() {
		s.Evaluate(ctx)
	})
	s.cron.Start()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
}

// Stop halts the periodic trigger. A pass already running completes.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Evaluate processes every due schedule in one pass and returns the
// number of invoices generated. Schedules are independent, so order
// does not matter. Failures are logged, never surfaced: a schedule
// that fails is left unadvanced and stays due for the next pass.
func (s *Scheduler) Evaluate(_ context.Context) int {
	now := s.now()
	generated := 0
	for _, sched := range s.ledger.DueRecurringInvoices(now) {
		if s.generate(sched, now) {
			generated++
		}
	}
	if generated > 0 {
		common.LogInfo("generated recurring invoices", common.Fields{"count": generated})
	}
	return generated
}

// generate produces one invoice from a due schedule and advances it.
// The invoice append and schedule advance are committed together by
// the ledger, or not at all.
func (s *Scheduler) generate(sched model.RecurringInvoice, now time.Time) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			common.LogError(fmt.Errorf("panic: %v", r), "recurring generation failed", common.Fields{"schedule": sched.ID})
			ok = false
		}
	}()

	interval := sched.Frequency.DayInterval()
	if interval <= 0 {
		common.LogError(common.ErrInvalidFrequency, "skipping schedule with invalid frequency", common.Fields{"schedule": sched.ID, "frequency": sched.Frequency})
		return false
	}

	inv := invoiceFromTemplate(sched, now)

	sched.LastGeneratedAt = &now
	// Advance from the previous due date, not from now. Scheduler
	// latency never accumulates drift, and a missed window leaves the
	// next due date in the past so the next pass generates again:
	// catch-up semantics, not skip semantics.
	sched.NextDueDate = sched.NextDueDate.AddDate(0, 0, interval)
	sched.GeneratedInvoiceIDs = append(sched.GeneratedInvoiceIDs, inv.ID)
	if sched.EndDate != nil && sched.NextDueDate.After(*sched.EndDate) {
		sched.IsActive = false
	}

	if !s.ledger.CommitGeneration(sched, inv) {
		common.LogInfo("schedule removed before generation committed", common.Fields{"schedule": sched.ID})
		return false
	}
	return true
}

// invoiceFromTemplate builds a fresh draft from the schedule's
// template. The template's own copy is never mutated or reused. The
// number takes the real clock at nanosecond resolution so back-to-back
// generations in one pass stay distinct.
func invoiceFromTemplate(sched model.RecurringInvoice, now time.Time) model.Invoice {
	inv := model.NewInvoice(sched.Template.Client)
	inv.Number = fmt.Sprintf("REC-%d", time.Now().UnixNano())
	inv.IssueDate = now
	inv.DueDate = now.AddDate(0, 0, 30)
	inv.Notes = sched.Template.Notes
	inv.TaxRate = sched.Template.TaxRate
	inv.TemplateID = sched.Template.ID
	inv.LineItems = sched.Template.CloneLineItems()
	inv.Status = model.InvoiceStatusDraft
	return inv
}
