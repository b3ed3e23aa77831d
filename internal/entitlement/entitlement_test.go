package entitlement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nadcreations/invoicious/internal/entitlement"
)

func TestPlanChecker(t *testing.T) {
	tests := []struct {
		plan       string
		subscribed bool
	}{
		{"pro", true},
		{"free", false},
		{"", false},
		{"enterprise", false},
	}

	for _, tt := range tests {
		t.Run("plan "+tt.plan, func(t *testing.T) {
			c := entitlement.NewPlanChecker(tt.plan)
			assert.Equal(t, tt.subscribed, c.IsSubscribed())
			assert.Equal(t, tt.subscribed, c.HasAccess(entitlement.FeatureTimeToInvoice))
			assert.Equal(t, tt.subscribed, c.HasAccess(entitlement.FeatureRecurringInvoices))
		})
	}
}

func TestCanCreateInvoice(t *testing.T) {
	free := entitlement.NewPlanChecker("free")
	pro := entitlement.NewPlanChecker("pro")

	tests := []struct {
		name    string
		checker entitlement.Checker
		count   int
		want    bool
	}{
		{"free under limit", free, 0, true},
		{"free one below limit", free, entitlement.FreeInvoiceLimit - 1, true},
		{"free at limit", free, entitlement.FreeInvoiceLimit, false},
		{"free over limit", free, entitlement.FreeInvoiceLimit + 5, false},
		{"pro at limit", pro, entitlement.FreeInvoiceLimit, true},
		{"pro large count", pro, 1000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entitlement.CanCreateInvoice(tt.checker, tt.count))
		})
	}
}
