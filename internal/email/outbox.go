package email

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/nadcreations/invoicious/internal/common"
	"github.com/nadcreations/invoicious/internal/model"
)

// OutboxSender writes each rendered message as an HTML file in an
// outbox directory. There is no billing backend to deliver through, so
// the outbox is where a user (or another tool) picks messages up.
type OutboxSender struct {
	dir string
	now func() time.Time
}

// NewOutboxSender creates an OutboxSender, ensuring the directory
// exists.
func NewOutboxSender(dir string) (*OutboxSender, error) {
	if dir == "" {
		return nil, fmt.Errorf("outbox directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create outbox directory: %w", err)
	}
	return &OutboxSender{dir: dir, now: time.Now}, nil
}

// SendInvoice composes the message and writes it to the outbox. A
// client without an email address cancels the send; a write failure
// fails it.
func (s *OutboxSender) SendInvoice(_ context.Context, inv model.Invoice, business model.BusinessInfo, customMessage string) Outcome {
	msg, err := Compose(inv, business, customMessage)
	if err != nil {
		return Failed(err.Error())
	}
	if msg.Recipient == "" {
		common.LogInfo("send cancelled, client has no email address", common.Fields{"invoice": inv.Number})
		return Cancelled()
	}

	now := s.now()
	name := fmt.Sprintf("%s-%d.html", inv.Number, now.UnixNano())
	path := filepath.Join(s.dir, name)
	content := fmt.Sprintf("<!-- To: %s -->\n<!-- Subject: %s -->\n%s", msg.Recipient, msg.Subject, msg.HTMLBody)
	if err := os.WriteFile(path, []byte(content), 0640); err != nil {
		return Failed(fmt.Sprintf("failed to write outbox file: %v", err))
	}

	common.LogInfo("invoice email written to outbox", common.Fields{"invoice": inv.Number, "path": path})
	return Sent(model.EmailRecord{
		SentAt:     now,
		Recipient:  msg.Recipient,
		Subject:    msg.Subject,
		Status:     model.EmailStatusDelivered,
		TrackingID: uuid.NewString(),
	})
}

// LogSender logs composed messages instead of delivering them. Useful
// in tests and dry runs.
type LogSender struct{}

// SendInvoice logs the message details and reports it sent.
func (LogSender) SendInvoice(_ context.Context, inv model.Invoice, business model.BusinessInfo, customMessage string) Outcome {
	msg, err := Compose(inv, business, customMessage)
	if err != nil {
		return Failed(err.Error())
	}
	if msg.Recipient == "" {
		return Cancelled()
	}

	common.LogInfo("invoice email (logged, not delivered)", common.Fields{
		"to":      msg.Recipient,
		"subject": msg.Subject,
	})
	return Sent(model.EmailRecord{
		SentAt:     time.Now(),
		Recipient:  msg.Recipient,
		Subject:    msg.Subject,
		Status:     model.EmailStatusDelivered,
		TrackingID: uuid.NewString(),
	})
}
