package services

import "errors"

// Errors shared across services and mapped to HTTP statuses in the handlers.
var (
	// Resource lookups
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrResultNotFound     = errors.New("result not found")
	ErrUserNotFound       = errors.New("user not found")

	// Validation and business rules
	ErrValidation           = errors.New("validation failed")
	ErrBudgetExceeded       = errors.New("reward configuration exceeds the prize pool")
	ErrTournamentNotStarted = errors.New("tournament has not started")
	ErrInvalidStatus        = errors.New("invalid tournament status")

	// Settlement guards
	ErrImmutableAfterSettlement = errors.New("result is immutable after settlement")
	ErrNotEligibleForSettlement = errors.New("result is not eligible for settlement")
	ErrLedgerWrite              = errors.New("ledger write failed")

	// Authentication
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email address is already in use")
)
