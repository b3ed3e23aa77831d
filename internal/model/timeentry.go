package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimeEntry represents a block of tracked work, possibly still running.
// ClientID is a weak reference by id; deleting the client leaves it
// dangling and readers treat it as absent.
type TimeEntry struct {
	StartTime   time.Time       `json:"startTime"`
	CreatedAt   time.Time       `json:"createdAt"`
	EndTime     *time.Time      `json:"endTime,omitempty"`
	ID          string          `json:"id"`
	Description string          `json:"description"`
	ProjectName string          `json:"projectName"`
	ClientID    string          `json:"clientId,omitempty"`
	HourlyRate  decimal.Decimal `json:"hourlyRate"`
	IsRunning   bool            `json:"isRunning"`
}

// NewTimeEntry creates a running entry started now.
func NewTimeEntry(description string, hourlyRate decimal.Decimal, projectName, clientID string) TimeEntry {
	now := time.Now()
	return TimeEntry{
		ID:          uuid.NewString(),
		Description: description,
		StartTime:   now,
		HourlyRate:  hourlyRate,
		IsRunning:   true,
		ProjectName: projectName,
		ClientID:    clientID,
		CreatedAt:   now,
	}
}

// Duration returns the entry's elapsed time. A running entry accrues
// against the supplied wall clock on every read; it is never mutated
// in the background.
func (te TimeEntry) Duration(now time.Time) time.Duration {
	switch {
	case te.EndTime != nil:
		return te.EndTime.Sub(te.StartTime)
	case te.IsRunning:
		return now.Sub(te.StartTime)
	default:
		return 0
	}
}

// Hours returns the duration in decimal hours.
func (te TimeEntry) Hours(now time.Time) decimal.Decimal {
	return decimal.NewFromFloat(te.Duration(now).Hours())
}

// Total returns hours × hourly rate.
func (te TimeEntry) Total(now time.Time) decimal.Decimal {
	return te.Hours(now).Mul(te.HourlyRate)
}
