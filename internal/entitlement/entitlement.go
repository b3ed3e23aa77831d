// Package entitlement gates premium features behind a subscription
// check. The check is a pure query; enforcement happens at the command
// boundary before anything touches the store.
package entitlement

// Feature identifies a gated capability.
type Feature string

// Gated features.
const (
	FeatureTimeToInvoice     Feature = "time-to-invoice"
	FeatureRecurringInvoices Feature = "recurring-invoices"
	FeatureUnlimitedInvoices Feature = "unlimited-invoices"
)

// FreeInvoiceLimit is how many invoices a non-subscriber may create.
const FreeInvoiceLimit = 3

// Checker answers entitlement queries.
type Checker interface {
	HasAccess(feature Feature) bool
	IsSubscribed() bool
}

// PlanChecker derives entitlements from the configured plan name.
type PlanChecker struct {
	plan string
}

// NewPlanChecker creates a checker for the given plan ("free" or
// "pro"). Unrecognized plans are treated as free.
func NewPlanChecker(plan string) *PlanChecker {
	return &PlanChecker{plan: plan}
}

// IsSubscribed reports whether the plan is a paid one.
func (c *PlanChecker) IsSubscribed() bool {
	return c.plan == "pro"
}

// HasAccess reports whether the plan includes the feature. Every gated
// feature is subscriber-only.
func (c *PlanChecker) HasAccess(_ Feature) bool {
	return c.IsSubscribed()
}

// CanCreateInvoice applies the free-tier limit: subscribers are
// unlimited, non-subscribers may hold at most FreeInvoiceLimit
// invoices.
func CanCreateInvoice(c Checker, currentCount int) bool {
	if c.HasAccess(FeatureUnlimitedInvoices) {
		return true
	}
	return currentCount < FreeInvoiceLimit
}
