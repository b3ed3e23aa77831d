// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Store errors.
	ErrNotFound        = errors.New("not found")
	ErrSnapshotCorrupt = errors.New("snapshot corrupt")
	ErrTimerNotRunning = errors.New("no timer running")

	// Validation errors.
	ErrNameRequired     = errors.New("name is required")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrOverpayment      = errors.New("payment exceeds remaining balance")
	ErrInvalidFrequency = errors.New("invalid frequency")

	// Entitlement errors.
	ErrNotEntitled   = errors.New("feature requires a subscription")
	ErrFreeTierLimit = errors.New("free tier invoice limit reached")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
