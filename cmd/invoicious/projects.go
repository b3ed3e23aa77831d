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

func projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
	}

	cmd.AddCommand(addProjectCmd())
	cmd.AddCommand(listProjectsCmd())
	cmd.AddCommand(deleteProjectCmd())

	return cmd
}

func addProjectCmd() *cobra.Command {
	var (
		rate        string
		description string
		client      string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new project",
		Args:  cobra.ExactArgs(1),
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

			p := model.NewProject(args[0], hourlyRate)
			p.Description = description
			if client != "" {
				c, ok := findClient(store.Clients(), client)
				if !ok {
					return fmt.Errorf("no client matches %q", client)
				}
				p.ClientID = c.ID
			}

			if err := store.AddProject(p); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Added project %q", p.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&rate, "rate", "", "default hourly rate")
	cmd.Flags().StringVar(&description, "description", "", "project description")
	cmd.Flags().StringVar(&client, "client", "", "client name or id")
	return cmd
}

func listProjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			projects := store.Projects()
			if len(projects) == 0 {
				fmt.Println(cli.InfoStyle.Render("No projects yet."))
				return nil
			}

			now := store.Now()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Rate"),
				cli.HeaderStyle.Render("Hours"),
				cli.HeaderStyle.Render("Value"))

			for _, p := range projects {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					shortID(p.ID), p.Name, p.DefaultHourlyRate.StringFixed(2),
					p.TotalHours(now).StringFixed(2), p.TotalValue(now).StringFixed(2))
			}
			return nil
		},
	}
}

func deleteProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Long:  `Delete a project. A timer running on one of its entries stops first.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			for _, p := range store.Projects() {
				if p.ID == args[0] || strings.HasPrefix(p.ID, args[0]) || p.Name == args[0] {
					store.DeleteProject(p.ID)
					fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted project %q", p.Name)))
					return nil
				}
			}
			return fmt.Errorf("no project matches %q", args[0])
		},
	}
}
