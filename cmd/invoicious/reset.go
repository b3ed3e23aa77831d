package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nadcreations/invoicious/internal/cli"
)

func resetCmd() *cobra.Command {
	var resetForce bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all data",
		Long: `Erase every client, invoice, estimate, project, time entry, and
recurring schedule, reset the business profile to defaults, and delete
all persisted data. The wipe is all-or-nothing.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			if !resetForce {
				fmt.Printf("This will erase %d invoice(s), %d client(s), and everything else. Type 'erase' to confirm: ",
					store.InvoiceCount(), len(store.Clients()))
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				if strings.TrimSpace(answer) != "erase" {
					fmt.Println(cli.InfoStyle.Render("Aborted."))
					return nil
				}
			}

			if err := store.EraseAll(); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render("✓ All data erased"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip confirmation prompt")
	return cmd
}
