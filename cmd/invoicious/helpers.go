package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/nadcreations/invoicious/internal/email"
	"github.com/nadcreations/invoicious/internal/entitlement"
	"github.com/nadcreations/invoicious/internal/ledger"
	"github.com/nadcreations/invoicious/internal/storage"
)

// initStore opens the snapshot database from config and loads the
// ledger. The caller closes the returned snapshot store.
func initStore() (*ledger.Store, *storage.SnapshotStore, error) {
	dbPath := viper.GetString("data.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "invoicious", "ledger.db")
	}

	snaps, err := storage.NewSnapshotStore(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	return ledger.New(snaps), snaps, nil
}

// initSender builds the configured email sender: an outbox directory
// by default, or a log-only sender when email.outbox is "none".
func initSender() (email.Sender, error) {
	dir := viper.GetString("email.outbox")
	if dir == "none" {
		return email.LogSender{}, nil
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".local", "share", "invoicious", "outbox")
	}
	return email.NewOutboxSender(dir)
}

// initEntitlements builds the entitlement checker from the configured
// plan.
func initEntitlements() entitlement.Checker {
	return entitlement.NewPlanChecker(viper.GetString("entitlement.plan"))
}

// parseAmount parses a decimal command argument.
func parseAmount(s, what string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", what, s, err)
	}
	return d, nil
}
