package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nadcreations/invoicious/internal/analytics"
	"github.com/nadcreations/invoicious/internal/cli"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show financial and tracking metrics",
		Long: `Derived metrics over the current ledger state: revenue, pending
balances, overdue counts, growth, estimate conversion, and time
tracking. Nothing here is stored; it is recomputed on every run.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			now := store.Now()
			invoices := store.Invoices()
			estimates := store.Estimates()
			entries := store.TimeEntries()

			fmt.Println(cli.TitleStyle.Render("Revenue"))
			fmt.Printf("  Total (paid invoices): %s\n", cli.AmountStyle.Render(analytics.TotalRevenue(invoices).StringFixed(2)))
			fmt.Printf("  Month to date: %s across %d invoice(s)\n",
				analytics.MonthToDateRevenue(invoices, now).StringFixed(2),
				analytics.MonthToDateInvoiceCount(invoices, now))
			fmt.Printf("  Growth vs last month: %.1f%%\n", analytics.RevenueGrowth(invoices, now))

			pending := analytics.PendingInvoices(invoices)
			fmt.Println()
			fmt.Println(cli.TitleStyle.Render("Outstanding"))
			fmt.Printf("  Pending: %d invoice(s), %s outstanding\n", pending.Count, pending.Amount.StringFixed(2))
			overdue := analytics.OverdueCount(invoices, now)
			if overdue > 0 {
				fmt.Printf("  Overdue: %s\n", cli.ErrorStyle.Render(fmt.Sprintf("%d invoice(s)", overdue)))
			} else {
				fmt.Println("  Overdue: 0")
			}

			fmt.Println()
			fmt.Println(cli.TitleStyle.Render("Estimates"))
			fmt.Printf("  Conversion rate: %.1f%%\n", analytics.EstimateConversionRate(estimates))

			tracking := analytics.TimeTracking(entries, now)
			fmt.Println()
			fmt.Println(cli.TitleStyle.Render("Time tracking"))
			fmt.Printf("  %d entries, %s hours, %s unbilled\n",
				tracking.EntryCount, tracking.TotalHours.StringFixed(2), tracking.UnbilledValue.StringFixed(2))
			if tracking.TimerRunning {
				fmt.Println(cli.SuccessStyle.Render("  Timer running"))
			}
			return nil
		},
	}
}
