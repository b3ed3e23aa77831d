// Package email composes and dispatches invoice emails. The transport
// is local-first: the default sender writes rendered messages to an
// outbox directory, and every send reports back an outcome the ledger
// uses to record the delivery.
package email

import (
	"context"

	"github.com/nadcreations/invoicious/internal/model"
)

// OutcomeKind classifies the result of a send attempt.
type OutcomeKind string

// Outcome kinds.
const (
	OutcomeSent      OutcomeKind = "sent"
	OutcomeCancelled OutcomeKind = "cancelled"
	OutcomeFailed    OutcomeKind = "failed"
)

// Outcome is the result reported back from a send attempt. Record is
// populated only for OutcomeSent; Reason only for OutcomeFailed.
type Outcome struct {
	Kind   OutcomeKind
	Record model.EmailRecord
	Reason string
}

// Sender dispatches a composed invoice email.
// Implementations are swappable so tests and offline use need no
// transport.
type Sender interface {
	SendInvoice(ctx context.Context, inv model.Invoice, business model.BusinessInfo, customMessage string) Outcome
}

// Sent wraps a record in a successful outcome.
func Sent(rec model.EmailRecord) Outcome {
	return Outcome{Kind: OutcomeSent, Record: rec}
}

// Cancelled reports a send the user or composer abandoned.
func Cancelled() Outcome {
	return Outcome{Kind: OutcomeCancelled}
}

// Failed reports a send that could not be delivered.
func Failed(reason string) Outcome {
	return Outcome{Kind: OutcomeFailed, Reason: reason}
}
