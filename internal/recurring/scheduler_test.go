package recurring_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadcreations/invoicious/internal/model"
	"github.com/nadcreations/invoicious/internal/recurring"
	"github.com/nadcreations/invoicious/internal/testutil"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTemplate() model.Invoice {
	client := model.NewClient("Acme Corp")
	client.Email = "billing@acme.test"
	tmpl := model.NewInvoice(client)
	tmpl.Notes = "Monthly retainer"
	tmpl.TaxRate = dec("0.10")
	tmpl.LineItems = []model.LineItem{model.NewLineItem("retainer", dec("1"), dec("500"))}
	return tmpl
}

func TestScheduler_EvaluateIsIdempotent(t *testing.T) {
	due := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	clock := testutil.NewClock(due)
	store := testutil.SetupStoreAt(t, clock)
	sched := recurring.NewScheduler(store, recurring.WithClock(clock.Now))

	store.AddRecurringInvoice(model.NewRecurringInvoice(newTemplate(), model.FrequencyWeekly, due))

	assert.Equal(t, 1, sched.Evaluate(context.Background()))
	assert.Equal(t, 0, sched.Evaluate(context.Background()), "no clock advance, nothing to do")

	require.Len(t, store.Invoices(), 1, "exactly one invoice for two passes at the same instant")

	r := store.RecurringInvoices()[0]
	assert.Equal(t, due.AddDate(0, 0, 7), r.NextDueDate, "advanced from the previous due date")
	require.NotNil(t, r.LastGeneratedAt)
	assert.Equal(t, due, *r.LastGeneratedAt)
	require.Len(t, r.GeneratedInvoiceIDs, 1)
	assert.Equal(t, store.Invoices()[0].ID, r.GeneratedInvoiceIDs[0])
}

func TestScheduler_GeneratedInvoiceIsAFreshDraft(t *testing.T) {
	due := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	clock := testutil.NewClock(due)
	store := testutil.SetupStoreAt(t, clock)
	sched := recurring.NewScheduler(store, recurring.WithClock(clock.Now))

	tmpl := newTemplate()
	tmpl.Status = model.InvoiceStatusSent
	store.AddRecurringInvoice(model.NewRecurringInvoice(tmpl, model.FrequencyMonthly, due))

	require.Equal(t, 1, sched.Evaluate(context.Background()))

	inv := store.Invoices()[0]
	assert.Equal(t, model.InvoiceStatusDraft, inv.Status, "generation always produces a draft")
	assert.NotEqual(t, tmpl.Number, inv.Number)
	assert.Contains(t, inv.Number, "REC-")
	assert.NotEqual(t, tmpl.ID, inv.ID)
	assert.Equal(t, tmpl.ID, inv.TemplateID)
	assert.Equal(t, "Monthly retainer", inv.Notes)
	assert.Equal(t, "Acme Corp", inv.Client.Name)
	assert.True(t, inv.Total().Equal(dec("550")))
	require.Len(t, inv.LineItems, 1)
	assert.NotEqual(t, tmpl.LineItems[0].ID, inv.LineItems[0].ID, "line items are copies, not shared")

	// The template inside the schedule is untouched.
	r := store.RecurringInvoices()[0]
	assert.Equal(t, model.InvoiceStatusSent, r.Template.Status)
	assert.Equal(t, tmpl.Number, r.Template.Number)
}

func TestScheduler_EndDateDeactivates(t *testing.T) {
	due := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	clock := testutil.NewClock(due)
	store := testutil.SetupStoreAt(t, clock)
	sched := recurring.NewScheduler(store, recurring.WithClock(clock.Now))

	r := model.NewRecurringInvoice(newTemplate(), model.FrequencyWeekly, due)
	end := due.AddDate(0, 0, 3) // before the advanced due date
	r.EndDate = &end
	store.AddRecurringInvoice(r)

	assert.Equal(t, 1, sched.Evaluate(context.Background()), "the final generation still happens")

	got := store.RecurringInvoices()[0]
	assert.False(t, got.IsActive, "advanced past the end date deactivates")

	clock.Advance(30 * 24 * time.Hour)
	assert.Equal(t, 0, sched.Evaluate(context.Background()), "inactive schedules never fire")
	assert.Len(t, store.Invoices(), 1)
}

func TestScheduler_CatchUpSemantics(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	// Three weekly windows have been missed.
	now := due.AddDate(0, 0, 15)
	clock := testutil.NewClock(now)
	store := testutil.SetupStoreAt(t, clock)
	sched := recurring.NewScheduler(store, recurring.WithClock(clock.Now))

	store.AddRecurringInvoice(model.NewRecurringInvoice(newTemplate(), model.FrequencyWeekly, due))

	// Each pass advances one interval from the previous due date, so
	// missed windows generate one at a time until caught up.
	assert.Equal(t, 1, sched.Evaluate(context.Background()))
	assert.Equal(t, due.AddDate(0, 0, 7), store.RecurringInvoices()[0].NextDueDate)

	assert.Equal(t, 1, sched.Evaluate(context.Background()))
	assert.Equal(t, 1, sched.Evaluate(context.Background()))
	assert.Equal(t, 0, sched.Evaluate(context.Background()), "caught up past now")

	assert.Len(t, store.Invoices(), 3)
	assert.Equal(t, due.AddDate(0, 0, 21), store.RecurringInvoices()[0].NextDueDate)
}

func TestScheduler_MultipleDueSchedulesInOnePass(t *testing.T) {
	due := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	clock := testutil.NewClock(due)
	store := testutil.SetupStoreAt(t, clock)
	sched := recurring.NewScheduler(store, recurring.WithClock(clock.Now))

	store.AddRecurringInvoice(model.NewRecurringInvoice(newTemplate(), model.FrequencyWeekly, due))
	store.AddRecurringInvoice(model.NewRecurringInvoice(newTemplate(), model.FrequencyMonthly, due.AddDate(0, 0, -2)))

	assert.Equal(t, 2, sched.Evaluate(context.Background()))
	invoices := store.Invoices()
	require.Len(t, invoices, 2)
	assert.NotEqual(t, invoices[0].Number, invoices[1].Number, "numbers are unique per generation")
}

func TestScheduler_InvalidFrequencyIsSkipped(t *testing.T) {
	due := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	clock := testutil.NewClock(due)
	store := testutil.SetupStoreAt(t, clock)
	sched := recurring.NewScheduler(store, recurring.WithClock(clock.Now))

	r := model.NewRecurringInvoice(newTemplate(), model.Frequency("bogus"), due)
	store.AddRecurringInvoice(r)

	assert.Equal(t, 0, sched.Evaluate(context.Background()))
	assert.Empty(t, store.Invoices())
	// The schedule is left untouched rather than advanced.
	assert.Equal(t, due, store.RecurringInvoices()[0].NextDueDate)
}

// stubLedger refuses every commit, standing in for a schedule removed
// between due-selection and commit.
type stubLedger struct {
	due       []model.RecurringInvoice
	committed int
}

func (s *stubLedger) DueRecurringInvoices(_ time.Time) []model.RecurringInvoice {
	return s.due
}

func (s *stubLedger) CommitGeneration(_ model.RecurringInvoice, _ model.Invoice) bool {
	s.committed++
	return false
}

func TestScheduler_CommitRefusalAppliesNothing(t *testing.T) {
	due := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	clock := testutil.NewClock(due)

	stub := &stubLedger{due: []model.RecurringInvoice{
		model.NewRecurringInvoice(newTemplate(), model.FrequencyWeekly, due),
	}}
	sched := recurring.NewScheduler(stub, recurring.WithClock(clock.Now))

	assert.Equal(t, 0, sched.Evaluate(context.Background()))
	assert.Equal(t, 1, stub.committed, "a commit was attempted and refused")
}
