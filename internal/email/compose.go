package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/nadcreations/invoicious/internal/model"
)

// Message is a composed invoice email ready for a Sender.
type Message struct {
	Recipient string
	Subject   string
	HTMLBody  string
}

var bodyTemplate = template.Must(template.New("invoice").Parse(`<html>
<body>
  <h2>Invoice {{.Invoice.Number}}</h2>
  {{if .CustomMessage}}<p>{{.CustomMessage}}</p>{{end}}
  <p>
    Issue date: {{.Invoice.IssueDate.Format "January 2, 2006"}}<br>
    Due date: {{.Invoice.DueDate.Format "January 2, 2006"}}<br>
    Total due: {{.Total}} {{.Business.DefaultCurrency}}
  </p>
  <hr>
  <p>
    {{.Business.DisplayName}}<br>
    {{if .Business.Email}}{{.Business.Email}}<br>{{end}}
    {{if .Business.Phone}}{{.Business.Phone}}<br>{{end}}
    {{if .Business.Address}}{{.Business.Address}}<br>{{end}}
  </p>
</body>
</html>
`))

// Compose renders the subject line and HTML body for an invoice.
func Compose(inv model.Invoice, business model.BusinessInfo, customMessage string) (Message, error) {
	subject := fmt.Sprintf("Invoice %s from %s", inv.Number, business.DisplayName())

	var body bytes.Buffer
	err := bodyTemplate.Execute(&body, struct {
		Invoice       model.Invoice
		Business      model.BusinessInfo
		CustomMessage string
		Total         string
	}{
		Invoice:       inv,
		Business:      business,
		CustomMessage: customMessage,
		Total:         inv.Total().StringFixed(2),
	})
	if err != nil {
		return Message{}, fmt.Errorf("failed to render invoice email: %w", err)
	}

	return Message{
		Recipient: inv.Client.Email,
		Subject:   subject,
		HTMLBody:  body.String(),
	}, nil
}
