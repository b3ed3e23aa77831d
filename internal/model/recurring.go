package model

import (
	"time"

	"github.com/google/uuid"
)

// Frequency is a recurring schedule's interval, expressed as a fixed
// number of days.
type Frequency string

// Frequency constants.
const (
	FrequencyWeekly       Frequency = "weekly"
	FrequencyBiweekly     Frequency = "biweekly"
	FrequencyMonthly      Frequency = "monthly"
	FrequencyQuarterly    Frequency = "quarterly"
	FrequencySemiannually Frequency = "semiannually"
	FrequencyAnnually     Frequency = "annually"
)

// ParseFrequency maps a user-supplied string to a Frequency.
func ParseFrequency(s string) (Frequency, bool) {
	switch Frequency(s) {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly,
		FrequencyQuarterly, FrequencySemiannually, FrequencyAnnually:
		return Frequency(s), true
	}
	return "", false
}

// DayInterval returns the fixed day count between generations.
func (f Frequency) DayInterval() int {
	switch f {
	case FrequencyWeekly:
		return 7
	case FrequencyBiweekly:
		return 14
	case FrequencyMonthly:
		return 30
	case FrequencyQuarterly:
		return 90
	case FrequencySemiannually:
		return 180
	case FrequencyAnnually:
		return 365
	default:
		return 0
	}
}

// RecurringInvoice owns a template invoice that is copied, never
// reused, to produce each generated invoice.
type RecurringInvoice struct {
	NextDueDate         time.Time  `json:"nextDueDate"`
	CreatedAt           time.Time  `json:"createdAt"`
	EndDate             *time.Time `json:"endDate,omitempty"`
	LastGeneratedAt     *time.Time `json:"lastGeneratedAt,omitempty"`
	ID                  string     `json:"id"`
	Frequency           Frequency  `json:"frequency"`
	Template            Invoice    `json:"template"`
	GeneratedInvoiceIDs []string   `json:"generatedInvoiceIds"`
	IsActive            bool       `json:"isActive"`
}

// NewRecurringInvoice creates an active schedule first due at nextDue.
func NewRecurringInvoice(template Invoice, frequency Frequency, nextDue time.Time) RecurringInvoice {
	return RecurringInvoice{
		ID:          uuid.NewString(),
		Template:    template,
		Frequency:   frequency,
		NextDueDate: nextDue,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
}

// IsDue reports whether the schedule should generate as of now.
func (r RecurringInvoice) IsDue(now time.Time) bool {
	return r.IsActive && !r.NextDueDate.After(now)
}
