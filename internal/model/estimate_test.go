package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEstimate_EffectiveStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 5)
	past := now.AddDate(0, 0, -5)

	tests := []struct {
		name       string
		status     EstimateStatus
		validUntil time.Time
		want       EstimateStatus
	}{
		{"valid draft stays draft", EstimateStatusDraft, future, EstimateStatusDraft},
		{"valid sent stays sent", EstimateStatusSent, future, EstimateStatusSent},
		{"lapsed draft reads expired", EstimateStatusDraft, past, EstimateStatusExpired},
		{"lapsed sent reads expired", EstimateStatusSent, past, EstimateStatusExpired},
		{"accepted is terminal even when lapsed", EstimateStatusAccepted, past, EstimateStatusAccepted},
		{"declined is terminal even when lapsed", EstimateStatusDeclined, past, EstimateStatusDeclined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEstimate(NewClient("Acme Corp"))
			e.Status = tt.status
			e.ValidUntil = tt.validUntil

			assert.Equal(t, tt.want, e.EffectiveStatus(now))
			assert.Equal(t, tt.status, e.Status, "stored status must not change")
		})
	}
}

func TestEstimate_Totals(t *testing.T) {
	e := NewEstimate(NewClient("Acme Corp"))
	e.LineItems = []LineItem{
		NewLineItem("design", dec("2"), dec("30")),
		NewLineItem("build", dec("4"), dec("10")),
	}
	e.TaxRate = dec("0.08")

	assert.True(t, e.Subtotal().Equal(dec("100")))
	assert.True(t, e.TaxAmount().Equal(dec("8")))
	assert.True(t, e.Total().Equal(dec("108")))
}

func TestEstimate_IsExpired(t *testing.T) {
	e := NewEstimate(NewClient("Acme Corp"))
	assert.False(t, e.IsExpired(e.ValidUntil.Add(-time.Hour)))
	assert.True(t, e.IsExpired(e.ValidUntil.Add(time.Hour)))
}
