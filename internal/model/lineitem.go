package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem represents a single billable line on an invoice or estimate.
// Quantity is expected to be non-negative but this is not enforced at
// the type level.
type LineItem struct {
	CreatedAt   time.Time       `json:"createdAt"`
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// NewLineItem creates a line item with a fresh identifier.
func NewLineItem(description string, quantity, unitPrice decimal.Decimal) LineItem {
	return LineItem{
		ID:          uuid.NewString(),
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		CreatedAt:   time.Now(),
	}
}

// Total returns quantity × unit price.
func (li LineItem) Total() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}
