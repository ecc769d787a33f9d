package domain

import "errors"

var (
	// Workflow errors
	ErrInvalidTransition = errors.New("invalid job transition")
	ErrRateNotFound      = errors.New("no rate for language pair")
	ErrStaleQuote        = errors.New("quote has been superseded")
	ErrNotEligible       = errors.New("job not eligible for invoicing")
	ErrAlreadyInvoiced   = errors.New("job already invoiced")
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// Collaborator errors
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")

	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrAlreadyExists   = errors.New("entity already exists")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrForbidden       = errors.New("actor not allowed")

	// Infrastructure-facing errors
	ErrOperationFailed    = errors.New("operation failed")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
	ErrInvalidExecContext = errors.New("invalid execution context")
	ErrLockNotAcquired    = errors.New("could not acquire lock")
)
