package email_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadcreations/invoicious/internal/email"
	"github.com/nadcreations/invoicious/internal/model"
)

func testInvoice(clientEmail string) model.Invoice {
	client := model.NewClient("Acme Corp")
	client.Email = clientEmail
	inv := model.NewInvoice(client)
	inv.TaxRate = decimal.Zero
	inv.LineItems = []model.LineItem{
		model.NewLineItem("Consulting", decimal.NewFromInt(2), decimal.NewFromInt(75)),
	}
	return inv
}

func TestCompose(t *testing.T) {
	business := model.DefaultBusinessInfo()
	business.Name = "Nad Creations"
	business.Email = "billing@nadcreations.example"

	inv := testInvoice("ap@acme.example")

	msg, err := email.Compose(inv, business, "Thanks for your business!")
	require.NoError(t, err)

	assert.Equal(t, "ap@acme.example", msg.Recipient)
	assert.Equal(t, "Invoice "+inv.Number+" from Nad Creations", msg.Subject)
	assert.Contains(t, msg.HTMLBody, inv.Number)
	assert.Contains(t, msg.HTMLBody, "150.00")
	assert.Contains(t, msg.HTMLBody, "Thanks for your business!")
	assert.Contains(t, msg.HTMLBody, "billing@nadcreations.example")
}

func TestComposeSubjectFallsBackToDefaultName(t *testing.T) {
	msg, err := email.Compose(testInvoice("ap@acme.example"), model.BusinessInfo{}, "")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(msg.Subject, "from Your Business"), "subject = %q", msg.Subject)
}

func TestOutboxSenderWritesFile(t *testing.T) {
	dir := t.TempDir()
	sender, err := email.NewOutboxSender(dir)
	require.NoError(t, err)

	inv := testInvoice("ap@acme.example")
	outcome := sender.SendInvoice(context.Background(), inv, model.DefaultBusinessInfo(), "")

	require.Equal(t, email.OutcomeSent, outcome.Kind)
	assert.Equal(t, "ap@acme.example", outcome.Record.Recipient)
	assert.Equal(t, model.EmailStatusDelivered, outcome.Record.Status)
	assert.NotEmpty(t, outcome.Record.TrackingID)
	assert.False(t, outcome.Record.SentAt.IsZero())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), inv.Number+"-"))

	content, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(content), "To: ap@acme.example")
	assert.Contains(t, string(content), inv.Number)
}

func TestOutboxSenderCancelsWithoutRecipient(t *testing.T) {
	dir := t.TempDir()
	sender, err := email.NewOutboxSender(dir)
	require.NoError(t, err)

	outcome := sender.SendInvoice(context.Background(), testInvoice(""), model.DefaultBusinessInfo(), "")

	assert.Equal(t, email.OutcomeCancelled, outcome.Kind)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "cancelled sends must not leave outbox files")
}

func TestNewOutboxSenderRejectsEmptyDir(t *testing.T) {
	_, err := email.NewOutboxSender("")
	assert.Error(t, err)
}

func TestLogSender(t *testing.T) {
	outcome := email.LogSender{}.SendInvoice(context.Background(), testInvoice("ap@acme.example"), model.DefaultBusinessInfo(), "")
	assert.Equal(t, email.OutcomeSent, outcome.Kind)

	outcome = email.LogSender{}.SendInvoice(context.Background(), testInvoice(""), model.DefaultBusinessInfo(), "")
	assert.Equal(t, email.OutcomeCancelled, outcome.Kind)
}
