package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nadcreations/invoicious/internal/cli"
	"github.com/nadcreations/invoicious/internal/common"
	"github.com/nadcreations/invoicious/internal/email"
	"github.com/nadcreations/invoicious/internal/entitlement"
	"github.com/nadcreations/invoicious/internal/ledger"
	"github.com/nadcreations/invoicious/internal/model"
)

func invoicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "Manage invoices",
		Long:  `Create, list, send, and settle invoices.`,
	}

	cmd.AddCommand(createInvoiceCmd())
	cmd.AddCommand(listInvoicesCmd())
	cmd.AddCommand(showInvoiceCmd())
	cmd.AddCommand(deleteInvoiceCmd())
	cmd.AddCommand(sendInvoiceCmd())
	cmd.AddCommand(payInvoiceCmd())
	cmd.AddCommand(viewInvoiceCmd())
	cmd.AddCommand(downloadInvoiceCmd())

	return cmd
}

func createInvoiceCmd() *cobra.Command {
	var (
		itemSpecs []string
		notes     string
		number    string
		taxRate   string
	)

	cmd := &cobra.Command{
		Use:   "create <client>",
		Short: "Create a draft invoice",
		Long: `Create a draft invoice for a client. Line items are given as
repeated --item flags in the form "description:quantity:unit-price".`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			checker := initEntitlements()
			if !entitlement.CanCreateInvoice(checker, store.InvoiceCount()) {
				return common.NewUserError(
					fmt.Sprintf("free tier is limited to %d invoices; upgrade to create more", entitlement.FreeInvoiceLimit),
					common.ErrFreeTierLimit)
			}

			client, ok := findClient(store.Clients(), args[0])
			if !ok {
				return fmt.Errorf("no client matches %q", args[0])
			}

			inv := model.NewInvoice(client)
			if number != "" {
				inv.Number = number
			}
			inv.Notes = notes
			if taxRate != "" {
				rate, err := parseAmount(taxRate, "tax rate")
				if err != nil {
					return err
				}
				inv.TaxRate = rate
			}
			items, err := parseLineItems(itemSpecs)
			if err != nil {
				return err
			}
			inv.LineItems = items

			store.AddInvoice(inv)
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Created invoice %s for %s, total %s",
				inv.Number, client.Name, inv.Total().StringFixed(2))))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&itemSpecs, "item", nil, `line item as "description:quantity:unit-price" (repeatable)`)
	cmd.Flags().StringVar(&notes, "notes", "", "invoice notes")
	cmd.Flags().StringVar(&number, "number", "", "invoice number (generated when omitted)")
	cmd.Flags().StringVar(&taxRate, "tax-rate", "", "tax rate, e.g. 0.10")
	return cmd
}

func listInvoicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all invoices",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			invoices := store.Invoices()
			if len(invoices) == 0 {
				fmt.Println(cli.InfoStyle.Render("No invoices yet. Use 'invoicious invoices create' to make one."))
				return nil
			}

			now := store.Now()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Number"),
				cli.HeaderStyle.Render("Client"),
				cli.HeaderStyle.Render("Total"),
				cli.HeaderStyle.Render("Balance"),
				cli.HeaderStyle.Render("Status"),
				cli.HeaderStyle.Render("Due"))

			for _, inv := range invoices {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					inv.Number,
					inv.Client.Name,
					inv.Total().StringFixed(2),
					inv.RemainingBalance().StringFixed(2),
					renderStatus(inv.EffectiveStatus(now)),
					inv.DueDate.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func showInvoiceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <number>",
		Short: "Show one invoice in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			inv, ok := findInvoice(store, args[0])
			if !ok {
				return fmt.Errorf("no invoice matches %q", args[0])
			}
			now := store.Now()

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Invoice %s / %s", inv.Number, inv.Client.Name)))
			fmt.Printf("Status: %s (stored: %s)\n", renderStatus(inv.EffectiveStatus(now)), inv.Status)
			fmt.Printf("Issued: %s  Due: %s\n", inv.IssueDate.Format("2006-01-02"), inv.DueDate.Format("2006-01-02"))
			if inv.Notes != "" {
				fmt.Printf("Notes: %s\n", inv.Notes)
			}

			fmt.Println()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Item"),
				cli.HeaderStyle.Render("Qty"),
				cli.HeaderStyle.Render("Unit"),
				cli.HeaderStyle.Render("Total"))
			for _, li := range inv.LineItems {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					li.Description, li.Quantity.String(), li.UnitPrice.StringFixed(2), li.Total().StringFixed(2))
			}
			w.Flush()

			fmt.Println()
			fmt.Printf("Subtotal: %s\n", inv.Subtotal().StringFixed(2))
			fmt.Printf("Tax (%s): %s\n", inv.TaxRate.String(), inv.TaxAmount().StringFixed(2))
			fmt.Printf("Total: %s\n", cli.AmountStyle.Render(inv.Total().StringFixed(2)))
			fmt.Printf("Paid: %s  Balance: %s\n", inv.TotalPaid().StringFixed(2), inv.RemainingBalance().StringFixed(2))

			if len(inv.Payments) > 0 {
				fmt.Println()
				fmt.Println(cli.HeaderStyle.Render("Payments"))
				for _, p := range inv.Payments {
					fmt.Printf("  %s  %s  %s\n", p.Date.Format("2006-01-02"), p.Amount.StringFixed(2), p.Method)
				}
			}
			if inv.TrackingEnabled && (inv.ViewCount > 0 || inv.DownloadCount > 0 || len(inv.EmailRecords) > 0) {
				fmt.Println()
				fmt.Printf("Views: %d  Downloads: %d\n", inv.ViewCount, inv.DownloadCount)
				for _, rec := range inv.EmailRecords {
					opened := ""
					if rec.OpenedAt != nil {
						opened = fmt.Sprintf(", opened %s", rec.OpenedAt.Format("2006-01-02"))
					}
					fmt.Printf("  Sent %s to %s (%s%s)\n", rec.SentAt.Format("2006-01-02"), rec.Recipient, rec.Status, opened)
				}
			}
			return nil
		},
	}
}

func deleteInvoiceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <number>",
		Short: "Delete an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			inv, ok := findInvoice(store, args[0])
			if !ok {
				return fmt.Errorf("no invoice matches %q", args[0])
			}
			store.DeleteInvoice(inv.ID)
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted invoice %s", inv.Number)))
			return nil
		},
	}
}

func sendInvoiceCmd() *cobra.Command {
	var customMessage string

	cmd := &cobra.Command{
		Use:   "send <number>",
		Short: "Send an invoice by email",
		Long: `Compose the invoice email and hand it to the configured sender.
On success the send is recorded and a draft invoice moves to sent.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			inv, ok := findInvoice(store, args[0])
			if !ok {
				return fmt.Errorf("no invoice matches %q", args[0])
			}

			sender, err := initSender()
			if err != nil {
				return err
			}

			outcome := sender.SendInvoice(cmd.Context(), inv, store.BusinessInfo(), customMessage)
			switch outcome.Kind {
			case email.OutcomeSent:
				store.RecordEmailSent(inv.ID, outcome.Record)
				fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Sent invoice %s to %s", inv.Number, outcome.Record.Recipient)))
			case email.OutcomeCancelled:
				fmt.Println(cli.WarningStyle.Render("Send cancelled"))
			case email.OutcomeFailed:
				return fmt.Errorf("send failed: %s", outcome.Reason)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&customMessage, "message", "", "custom message for the email body")
	return cmd
}

func payInvoiceCmd() *cobra.Command {
	var (
		method    string
		reference string
	)

	cmd := &cobra.Command{
		Use:   "pay <number> <amount>",
		Short: "Record a payment against an invoice",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			inv, ok := findInvoice(store, args[0])
			if !ok {
				return fmt.Errorf("no invoice matches %q", args[0])
			}
			amount, err := parseAmount(args[1], "amount")
			if err != nil {
				return err
			}
			m, ok := model.ParsePaymentMethod(method)
			if !ok {
				return fmt.Errorf("invalid payment method %q", method)
			}

			p := model.NewPayment(amount, m)
			p.Reference = reference
			if err := store.RecordPayment(inv.ID, p); err != nil {
				return err
			}

			updated, _ := store.GetInvoice(inv.ID)
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Recorded %s against %s; balance %s",
				amount.StringFixed(2), inv.Number, updated.RemainingBalance().StringFixed(2))))
			return nil
		},
	}

	cmd.Flags().StringVar(&method, "method", string(model.PaymentMethodBankTransfer), "payment method (cash, check, credit-card, bank-transfer, paypal, other)")
	cmd.Flags().StringVar(&reference, "reference", "", "payment reference")
	return cmd
}

func viewInvoiceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <number>",
		Short: "Record that the client viewed an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			inv, ok := findInvoice(store, args[0])
			if !ok {
				return fmt.Errorf("no invoice matches %q", args[0])
			}
			store.RecordViewed(inv.ID, store.Now())
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Recorded view of %s", inv.Number)))
			return nil
		},
	}
}

func downloadInvoiceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download <number>",
		Short: "Record that the client downloaded an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			inv, ok := findInvoice(store, args[0])
			if !ok {
				return fmt.Errorf("no invoice matches %q", args[0])
			}
			store.RecordDownloaded(inv.ID, store.Now())
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Recorded download of %s", inv.Number)))
			return nil
		},
	}
}

// findInvoice resolves an invoice by number, id, or id prefix.
func findInvoice(store *ledger.Store, ref string) (model.Invoice, bool) {
	for _, inv := range store.Invoices() {
		if inv.Number == ref || inv.ID == ref || strings.HasPrefix(inv.ID, ref) {
			return inv, true
		}
	}
	return model.Invoice{}, false
}

// parseLineItems parses repeated "description:quantity:unit-price"
// specs.
func parseLineItems(specs []string) ([]model.LineItem, error) {
	items := make([]model.LineItem, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid line item %q, want \"description:quantity:unit-price\"", spec)
		}
		qty, err := parseAmount(parts[1], "quantity")
		if err != nil {
			return nil, err
		}
		price, err := parseAmount(parts[2], "unit price")
		if err != nil {
			return nil, err
		}
		items = append(items, model.NewLineItem(parts[0], qty, price))
	}
	return items, nil
}

// renderStatus colors an invoice status for table output.
func renderStatus(status model.InvoiceStatus) string {
	switch status {
	case model.InvoiceStatusPaid:
		return cli.SuccessStyle.Render(string(status))
	case model.InvoiceStatusOverdue:
		return cli.ErrorStyle.Render(string(status))
	case model.InvoiceStatusPartiallyPaid:
		return cli.WarningStyle.Render(string(status))
	default:
		return string(status)
	}
}
