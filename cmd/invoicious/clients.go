package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nadcreations/invoicious/internal/cli"
	"github.com/nadcreations/invoicious/internal/model"
)

func clientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage clients",
		Long:  `List, add, update, and delete the clients you bill.`,
	}

	cmd.AddCommand(listClientsCmd())
	cmd.AddCommand(addClientCmd())
	cmd.AddCommand(updateClientCmd())
	cmd.AddCommand(deleteClientCmd())

	return cmd
}

func listClientsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all clients",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			clients := store.Clients()
			if len(clients) == 0 {
				fmt.Println(cli.InfoStyle.Render("No clients yet. Use 'invoicious clients add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Email"),
				cli.HeaderStyle.Render("Phone"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 8),
				strings.Repeat("-", 20),
				strings.Repeat("-", 24),
				strings.Repeat("-", 14))

			for _, c := range clients {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", shortID(c.ID), c.Name, c.Email, c.Phone)
			}
			return nil
		},
	}
}

func addClientCmd() *cobra.Command {
	var (
		clientEmail string
		clientPhone string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new client",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			c := model.NewClient(args[0])
			c.Email = clientEmail
			c.Phone = clientPhone
			if err := store.AddClient(c); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Added client %q (%s)", c.Name, shortID(c.ID))))
			return nil
		},
	}

	cmd.Flags().StringVar(&clientEmail, "email", "", "client email address")
	cmd.Flags().StringVar(&clientPhone, "phone", "", "client phone number")
	return cmd
}

func updateClientCmd() *cobra.Command {
	var (
		clientName  string
		clientEmail string
		clientPhone string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			c, ok := findClient(store.Clients(), args[0])
			if !ok {
				return fmt.Errorf("no client matches %q", args[0])
			}

			if clientName != "" {
				c.Name = clientName
			}
			if clientEmail != "" {
				c.Email = clientEmail
			}
			if clientPhone != "" {
				c.Phone = clientPhone
			}
			if !store.UpdateClient(c) {
				return fmt.Errorf("client %q no longer exists", args[0])
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Updated client %q", c.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&clientName, "name", "", "new name")
	cmd.Flags().StringVar(&clientEmail, "email", "", "new email address")
	cmd.Flags().StringVar(&clientPhone, "phone", "", "new phone number")
	return cmd
}

func deleteClientCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client",
		Long: `Delete a client record. Invoices and estimates keep the client
snapshot they were issued with; they are not changed by this.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			c, ok := findClient(store.Clients(), args[0])
			if !ok {
				return fmt.Errorf("no client matches %q", args[0])
			}
			if !store.DeleteClient(c.ID) {
				return fmt.Errorf("client %q no longer exists", args[0])
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted client %q", c.Name)))
			return nil
		},
	}
}

// findClient resolves a client by id prefix or exact name.
func findClient(clients []model.Client, ref string) (model.Client, bool) {
	for _, c := range clients {
		if c.ID == ref || strings.HasPrefix(c.ID, ref) || c.Name == ref {
			return c, true
		}
	}
	return model.Client{}, false
}

// shortID abbreviates a uuid for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
