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

func timerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Track billable time",
		Long:  `Start and stop the timer, review tracked entries, and bill them.`,
	}

	cmd.AddCommand(startTimerCmd())
	cmd.AddCommand(stopTimerCmd())
	cmd.AddCommand(timerStatusCmd())
	cmd.AddCommand(listEntriesCmd())
	cmd.AddCommand(deleteEntryCmd())
	cmd.AddCommand(timerInvoiceCmd())

	return cmd
}

func startTimerCmd() *cobra.Command {
	var (
		rate    string
		project string
		client  string
	)

	cmd := &cobra.Command{
		Use:   "start <description>",
		Short: "Start tracking time",
		Long: `Start a new timer. A timer already running is stopped first; at
most one entry is ever running.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			hourlyRate := store.BusinessInfo().DefaultHourlyRate
			if rate != "" {
				hourlyRate, err = parseAmount(rate, "hourly rate")
				if err != nil {
					return err
				}
			}

			clientID := ""
			if client != "" {
				c, ok := findClient(store.Clients(), client)
				if !ok {
					return fmt.Errorf("no client matches %q", client)
				}
				clientID = c.ID
			}

			te := store.StartTimer(args[0], hourlyRate, project, clientID)
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Timer started: %s at %s/h", te.Description, te.HourlyRate.StringFixed(2))))
			return nil
		},
	}

	cmd.Flags().StringVar(&rate, "rate", "", "hourly rate (defaults to the business rate)")
	cmd.Flags().StringVar(&project, "project", "", "project name")
	cmd.Flags().StringVar(&client, "client", "", "client name or id")
	return cmd
}

func stopTimerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			te, ok := store.StopTimer()
			if !ok {
				fmt.Println(cli.InfoStyle.Render("No timer running."))
				return nil
			}
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Stopped %q after %s", te.Description, te.Duration(store.Now()).Round(1e9))))
			return nil
		},
	}
}

func timerStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running timer",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			te, ok := store.ActiveEntry()
			if !ok {
				fmt.Println(cli.InfoStyle.Render("No timer running."))
				return nil
			}
			now := store.Now()
			fmt.Printf("%s: %s elapsed (%s so far)\n",
				te.Description, te.Duration(now).Round(1e9), te.Total(now).StringFixed(2))
			return nil
		},
	}
}

func listEntriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked time entries",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			entries := store.TimeEntries()
			if len(entries) == 0 {
				fmt.Println(cli.InfoStyle.Render("No time entries yet."))
				return nil
			}

			now := store.Now()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Description"),
				cli.HeaderStyle.Render("Project"),
				cli.HeaderStyle.Render("Hours"),
				cli.HeaderStyle.Render("Value"),
				cli.HeaderStyle.Render("Running"))

			for _, te := range entries {
				running := ""
				if te.IsRunning {
					running = cli.SuccessStyle.Render("●")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					shortID(te.ID), te.Description, te.ProjectName,
					te.Hours(now).StringFixed(2), te.Total(now).StringFixed(2), running)
			}
			return nil
		},
	}
}

func deleteEntryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a time entry",
		Long:  `Delete an entry by id. The active entry is stopped before removal.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			te, ok := findEntry(store, args[0])
			if !ok {
				return fmt.Errorf("no time entry matches %q", args[0])
			}
			store.DeleteTimeEntry(te.ID)
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted entry %q", te.Description)))
			return nil
		},
	}
}

func timerInvoiceCmd() *cobra.Command {
	var client string

	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Bill tracked time as a draft invoice",
		Long: `Convert completed time entries into invoice line items, grouped by
project name (or description). Requires a subscription.`,
		RunE: func(_ *cobra.Command, args []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			checker := initEntitlements()
			if !checker.HasAccess(entitlement.FeatureTimeToInvoice) {
				return common.NewUserError("time-to-invoice conversion requires a subscription", common.ErrNotEntitled)
			}
			if !entitlement.CanCreateInvoice(checker, store.InvoiceCount()) {
				return common.NewUserError(
					fmt.Sprintf("free tier is limited to %d invoices; upgrade to create more", entitlement.FreeInvoiceLimit),
					common.ErrFreeTierLimit)
			}

			c, ok := findClient(store.Clients(), client)
			if !ok {
				return fmt.Errorf("no client matches %q", client)
			}

			var billable []model.TimeEntry
			for _, te := range store.TimeEntries() {
				if !te.IsRunning {
					billable = append(billable, te)
				}
			}
			if len(billable) == 0 {
				fmt.Println(cli.InfoStyle.Render("No completed time entries to bill."))
				return nil
			}

			now := store.Now()
			inv := model.NewInvoice(c)
			inv.LineItems = ledger.LineItemsFromEntries(billable, now)
			store.AddInvoice(inv)

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Created invoice %s with %d line item(s), total %s",
				inv.Number, len(inv.LineItems), inv.Total().StringFixed(2))))
			return nil
		},
	}

	cmd.Flags().StringVar(&client, "client", "", "client to bill (name or id)")
	_ = cmd.MarkFlagRequired("client")
	return cmd
}

// findEntry resolves a time entry by id or id prefix.
func findEntry(store *ledger.Store, ref string) (model.TimeEntry, bool) {
	for _, te := range store.TimeEntries() {
		if te.ID == ref || strings.HasPrefix(te.ID, ref) {
			return te, true
		}
	}
	return model.TimeEntry{}, false
}
