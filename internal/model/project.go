package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Project groups time entries under a name and default rate. ClientID
// is a weak reference by id.
type Project struct {
	CreatedAt         time.Time       `json:"createdAt"`
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	ClientID          string          `json:"clientId,omitempty"`
	Entries           []TimeEntry     `json:"entries"`
	DefaultHourlyRate decimal.Decimal `json:"defaultHourlyRate"`
	Active            bool            `json:"active"`
}

// NewProject creates an active project.
func NewProject(name string, defaultHourlyRate decimal.Decimal) Project {
	return Project{
		ID:                uuid.NewString(),
		Name:              name,
		DefaultHourlyRate: defaultHourlyRate,
		Active:            true,
		CreatedAt:         time.Now(),
	}
}

// TotalHours sums the hours of the project's entries.
func (p Project) TotalHours(now time.Time) decimal.Decimal {
	sum := decimal.Zero
	for _, te := range p.Entries {
		sum = sum.Add(te.Hours(now))
	}
	return sum
}

// TotalValue sums the billable value of the project's entries.
func (p Project) TotalValue(now time.Time) decimal.Decimal {
	sum := decimal.Zero
	for _, te := range p.Entries {
		sum = sum.Add(te.Total(now))
	}
	return sum
}
