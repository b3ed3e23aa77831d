package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod identifies how a payment was made.
type PaymentMethod string

// Payment method constants.
const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodCreditCard   PaymentMethod = "credit-card"
	PaymentMethodBankTransfer PaymentMethod = "bank-transfer"
	PaymentMethodPayPal       PaymentMethod = "paypal"
	PaymentMethodOther        PaymentMethod = "other"
)

// ParsePaymentMethod maps a user-supplied string to a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentMethodCash, PaymentMethodCheck, PaymentMethodCreditCard,
		PaymentMethodBankTransfer, PaymentMethodPayPal, PaymentMethodOther:
		return PaymentMethod(s), true
	}
	return "", false
}

// Payment represents money received against an invoice.
type Payment struct {
	CreatedAt time.Time       `json:"createdAt"`
	Date      time.Time       `json:"date"`
	ID        string          `json:"id"`
	Method    PaymentMethod   `json:"method"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
	Amount    decimal.Decimal `json:"amount"`
}

// NewPayment creates a payment dated now.
func NewPayment(amount decimal.Decimal, method PaymentMethod) Payment {
	now := time.Now()
	return Payment{
		ID:        uuid.NewString(),
		Amount:    amount,
		Date:      now,
		Method:    method,
		CreatedAt: now,
	}
}
