// Package model defines the core domain entities of the billing ledger.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a customer that invoices and estimates are issued to.
type Client struct {
	CreatedAt  time.Time `json:"createdAt"`
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postalCode"`
	Country    string    `json:"country"`
}

// NewClient creates a client with a fresh identifier.
// Name is required for saving but validated at the command boundary,
// not here.
func NewClient(name string) Client {
	return Client{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
	}
}
