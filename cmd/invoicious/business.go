package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nadcreations/invoicious/internal/cli"
)

func businessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "business",
		Short: "Manage the business profile",
	}

	cmd.AddCommand(showBusinessCmd())
	cmd.AddCommand(setBusinessCmd())

	return cmd
}

func showBusinessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the business profile",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			b := store.BusinessInfo()
			fmt.Println(cli.TitleStyle.Render(b.DisplayName()))
			if b.Email != "" {
				fmt.Printf("Email: %s\n", b.Email)
			}
			if b.Phone != "" {
				fmt.Printf("Phone: %s\n", b.Phone)
			}
			if b.Address != "" {
				fmt.Printf("Address: %s\n", b.Address)
			}
			if b.Website != "" {
				fmt.Printf("Website: %s\n", b.Website)
			}
			if b.TaxID != "" {
				fmt.Printf("Tax ID: %s\n", b.TaxID)
			}
			fmt.Printf("Default rate: %s %s/h\n", b.DefaultHourlyRate.StringFixed(2), b.DefaultCurrency)
			return nil
		},
	}
}

func setBusinessCmd() *cobra.Command {
	var (
		name     string
		emailStr string
		phone    string
		address  string
		website  string
		taxID    string
		rate     string
		currency string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update the business profile",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, snaps, err := initStore()
			if err != nil {
				return err
			}
			defer snaps.Close()

			b := store.BusinessInfo()
			if name != "" {
				b.Name = name
			}
			if emailStr != "" {
				b.Email = emailStr
			}
			if phone != "" {
				b.Phone = phone
			}
			if address != "" {
				b.Address = address
			}
			if website != "" {
				b.Website = website
			}
			if taxID != "" {
				b.TaxID = taxID
			}
			if currency != "" {
				b.DefaultCurrency = currency
			}
			if rate != "" {
				b.DefaultHourlyRate, err = parseAmount(rate, "hourly rate")
				if err != nil {
					return err
				}
			}

			store.SetBusinessInfo(b)
			fmt.Println(cli.SuccessStyle.Render("✓ Business profile updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name")
	cmd.Flags().StringVar(&emailStr, "email", "", "contact email")
	cmd.Flags().StringVar(&phone, "phone", "", "contact phone")
	cmd.Flags().StringVar(&address, "address", "", "postal address")
	cmd.Flags().StringVar(&website, "website", "", "website")
	cmd.Flags().StringVar(&taxID, "tax-id", "", "tax id")
	cmd.Flags().StringVar(&rate, "rate", "", "default hourly rate")
	cmd.Flags().StringVar(&currency, "currency", "", "default currency code")
	return cmd
}
