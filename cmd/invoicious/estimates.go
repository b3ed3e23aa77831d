package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nadcreations/invoicious/internal/cli"
	"github.com/nadcreations/invoicious/internal/common"
	"github.com/nadcreations/invoicious/internal/entitlement"
	"github.com/nadcreations/invoicious/internal/ledger"
	"github.com/nadcreations/invoicious/internal/model"
)

func estimatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimates",
		Short: "Manage estimates",
		Long:  `Create estimates, resolve them, and convert accepted ones to invoices.`,
	}

	cmd.AddCommand(createEstimateCmd())
	cmd.AddCommand(listEstimatesCmd())
	cmd.AddCommand(markEstimateCmd("accept", model.EstimateStatusAccepted))
	cmd.AddCommand(markEstimateCmd("decline", model.EstimateStatusDeclined))
	cmd.AddCommand(convertEstimateCmd())
	cmd.AddCommand(deleteEstimateCmd())

	return cmd
}

func createEstimateCmd() *cobra.Command {
	var (
		itemSpecs []string
		notes     string
		taxRate   string
	)

	cmd := &cobra.Command{
		Use:   "create <client>",
		Short: "Create a draft estimate",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			client, ok := findClient(store.Clients(), args[0])
			if !ok {
				return fmt.Errorf("no client matches %q", args[0])
			}

			e := model.NewEstimate(client)
			e.Notes = notes
			if taxRate != "" {
				rate, err := parseAmount(taxRate, "tax rate")
				if err != nil {
					return err
				}
				e.TaxRate = rate
			}
			items, err := parseLineItems(itemSpecs)
			if err != nil {
				return err
			}
			e.LineItems = items

			store.AddEstimate(e)
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Created estimate %s for %s, total %s",
				e.Number, client.Name, e.Total().StringFixed(2))))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&itemSpecs, "item", nil, `line item as "description:quantity:unit-price" (repeatable)`)
	cmd.Flags().StringVar(&notes, "notes", "", "estimate notes")
	cmd.Flags().StringVar(&taxRate, "tax-rate", "", "tax rate, e.g. 0.08")
	return cmd
}

func listEstimatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all estimates",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			estimates := store.Estimates()
			if len(estimates) == 0 {
				fmt.Println(cli.InfoStyle.Render("No estimates yet."))
				return nil
			}

			now := store.Now()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Number"),
				cli.HeaderStyle.Render("Client"),
				cli.HeaderStyle.Render("Total"),
				cli.HeaderStyle.Render("Status"),
				cli.HeaderStyle.Render("Valid until"))

			for _, e := range estimates {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.Number,
					e.Client.Name,
					e.Total().StringFixed(2),
					string(e.EffectiveStatus(now)),
					e.ValidUntil.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func markEstimateCmd(verb string, status model.EstimateStatus) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <number>",
		Short: fmt.Sprintf("Mark an estimate %s", status),
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			e, ok := findEstimate(store, args[0])
			if !ok {
				return fmt.Errorf("no estimate matches %q", args[0])
			}
			e.Status = status
			if !store.UpdateEstimate(e) {
				return fmt.Errorf("estimate %q no longer exists", args[0])
			}
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Estimate %s marked %s", e.Number, status)))
			return nil
		},
	}
}

func convertEstimateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <number>",
		Short: "Convert an estimate into a draft invoice",
		Long: `Create a draft invoice from an estimate's client, line items, and
tax rate, due in 30 days. The estimate is marked accepted.`,
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

			e, ok := findEstimate(store, args[0])
			if !ok {
				return fmt.Errorf("no estimate matches %q", args[0])
			}
			inv, err := store.ConvertEstimate(e.ID)
			if err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Converted estimate %s into invoice %s", e.Number, inv.Number)))
			return nil
		},
	}
}

func deleteEstimateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <number>",
		Short: "Delete an estimate",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			e, ok := findEstimate(store, args[0])
			if !ok {
				return fmt.Errorf("no estimate matches %q", args[0])
			}
			store.DeleteEstimate(e.ID)
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted estimate %s", e.Number)))
			return nil
		},
	}
}

// findEstimate resolves an estimate by number, id, or id prefix.
func findEstimate(store *ledger.Store, ref string) (model.Estimate, bool) {
	for _, e := range store.Estimates() {
		if e.Number == ref || e.ID == ref || strings.HasPrefix(e.ID, ref) {
			return e, true
		}
	}
	return model.Estimate{}, false
}
