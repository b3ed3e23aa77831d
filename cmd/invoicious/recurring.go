package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/nadcreations/invoicious/internal/cli"
	"github.com/nadcreations/invoicious/internal/common"
	"github.com/nadcreations/invoicious/internal/entitlement"
	"github.com/nadcreations/invoicious/internal/ledger"
	"github.com/nadcreations/invoicious/internal/model"
	"github.com/nadcreations/invoicious/internal/recurring"
)

func recurringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage recurring invoice schedules",
		Long: `Schedules generate fresh draft invoices from a template invoice on a
fixed cadence. Creating schedules requires a subscription.`,
	}

	cmd.AddCommand(addRecurringCmd())
	cmd.AddCommand(listRecurringCmd())
	cmd.AddCommand(runRecurringCmd())
	cmd.AddCommand(setRecurringActiveCmd("pause", false))
	cmd.AddCommand(setRecurringActiveCmd("resume", true))
	cmd.AddCommand(deleteRecurringCmd())

	return cmd
}

func addRecurringCmd() *cobra.Command {
	var (
		frequency string
		firstDue  string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "add <invoice-number>",
		Short: "Create a schedule from an existing invoice",
		Long: `Use an existing invoice as the template for a recurring schedule.
The template is copied on every generation, never reused.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			checker := initEntitlements()
			if !checker.HasAccess(entitlement.FeatureRecurringInvoices) {
				return common.NewUserError("recurring invoices require a subscription", common.ErrNotEntitled)
			}

			tmpl, ok := findInvoice(store, args[0])
			if !ok {
				return fmt.Errorf("no invoice matches %q", args[0])
			}

			freq, ok := model.ParseFrequency(frequency)
			if !ok {
				return common.NewUserError(
					fmt.Sprintf("invalid frequency %q (weekly, biweekly, monthly, quarterly, semiannually, annually)", frequency),
					common.ErrInvalidFrequency)
			}

			nextDue := store.Now()
			if firstDue != "" {
				nextDue, err = time.Parse("2006-01-02", firstDue)
				if err != nil {
					return fmt.Errorf("invalid first due date %q: %w", firstDue, err)
				}
			}

			r := model.NewRecurringInvoice(tmpl, freq, nextDue)
			if endDate != "" {
				end, err := time.Parse("2006-01-02", endDate)
				if err != nil {
					return fmt.Errorf("invalid end date %q: %w", endDate, err)
				}
				r.EndDate = &end
			}

			store.AddRecurringInvoice(r)
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Scheduled %s %s, next due %s",
				tmpl.Number, freq, nextDue.Format("2006-01-02"))))
			return nil
		},
	}

	cmd.Flags().StringVar(&frequency, "frequency", "monthly", "generation cadence")
	cmd.Flags().StringVar(&firstDue, "first-due", "", "first due date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&endDate, "end", "", "stop generating after this date (YYYY-MM-DD)")
	return cmd
}

func listRecurringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recurring schedules",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			schedules := store.RecurringInvoices()
			if len(schedules) == 0 {
				fmt.Println(cli.InfoStyle.Render("No recurring schedules."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Template"),
				cli.HeaderStyle.Render("Frequency"),
				cli.HeaderStyle.Render("Next due"),
				cli.HeaderStyle.Render("Generated"),
				cli.HeaderStyle.Render("Active"))

			for _, r := range schedules {
				active := cli.SuccessStyle.Render("yes")
				if !r.IsActive {
					active = cli.InfoStyle.Render("no")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
					shortID(r.ID), r.Template.Number, r.Frequency,
					r.NextDueDate.Format("2006-01-02"), len(r.GeneratedInvoiceIDs), active)
			}
			return nil
		},
	}
}

func runRecurringCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate due schedules now",
		Long: `Run one evaluation pass over all due schedules. With --watch the
process stays up and re-evaluates hourly, like the app does in the
background. A pass is idempotent: re-running it without the clock
moving generates nothing new.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			sched := recurring.NewScheduler(store, recurring.WithClock(store.Now))
			if watch {
				fmt.Println(cli.InfoStyle.Render("Watching schedules; press Ctrl-C to stop."))
				sched.Start(cmd.Context())
				<-cmd.Context().Done()
				return nil
			}

			n := sched.Evaluate(cmd.Context())
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Generated %d invoice(s)", n)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "keep running and evaluate hourly")
	return cmd
}

func setRecurringActiveCmd(verb string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: verb + " a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			r, ok := findSchedule(store, args[0])
			if !ok {
				return fmt.Errorf("no schedule matches %q", args[0])
			}
			r.IsActive = active
			if !store.UpdateRecurringInvoice(r) {
				return fmt.Errorf("schedule %q no longer exists", args[0])
			}
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Schedule %s %sd", shortID(r.ID), verb)))
			return nil
		},
	}
}

func deleteRecurringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a schedule",
		Long:  `Delete a schedule. Invoices it already generated are kept.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			r, ok := findSchedule(store, args[0])
			if !ok {
				return fmt.Errorf("no schedule matches %q", args[0])
			}
			store.DeleteRecurringInvoice(r.ID)
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted schedule %s", shortID(r.ID))))
			return nil
		},
	}
}

// findSchedule resolves a schedule by id or id prefix.
func findSchedule(store *ledger.Store, ref string) (model.RecurringInvoice, bool) {
	for _, r := range store.RecurringInvoices() {
		if r.ID == ref || strings.HasPrefix(r.ID, ref) {
			return r, true
		}
	}
	return model.RecurringInvoice{}, false
}
