/*
errors.go - Centralized error types for the lending engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers (HTTP handlers, stores) wrap these with additional context.

ERROR CATEGORIES:
  1. Configuration errors - Invalid engine parameters (fail fast)
  2. Data-integrity errors - Impossible date orderings in records
  3. Store errors - Missing or conflicting records

PROPAGATION POLICY:
  The engine raises on configuration and ordering errors, which are
  programmer or data-integrity mistakes. Merely unusual financial states
  (zero balance, very large overdue counts, over-payment) are NOT errors:
  they are represented as normal statuses and flags on the assessment.

USAGE:
  if errors.Is(err, lending.ErrInvalidDateOrdering) {
      // reject the record, don't display negative overdue days
  }
*/
package lending

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidConfiguration is returned for non-positive grace cycles,
	// negative penalty rates, or a grace window wider than its cycle.
	ErrInvalidConfiguration = errors.New("invalid engine configuration")

	// ErrInvalidDateOrdering is returned when record dates are impossible:
	// a payment or as-of date earlier than the obligation's created date.
	ErrInvalidDateOrdering = errors.New("invalid date ordering")

	// ErrInvalidPayment is returned for a payment with a non-positive amount
	// or one that would push the balance below zero.
	ErrInvalidPayment = errors.New("invalid payment")

	// ErrClientNotFound is returned when a referenced client doesn't exist.
	ErrClientNotFound = errors.New("client not found")

	// ErrObligationNotFound is returned when a referenced obligation doesn't exist.
	ErrObligationNotFound = errors.New("obligation not found")

	// ErrDuplicateDocument is returned when a client with the same document
	// number already exists.
	ErrDuplicateDocument = errors.New("duplicate document number")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ConfigError reports which configuration field is invalid.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfiguration }

// DateOrderingError reports a date that precedes the boundary it must not.
type DateOrderingError struct {
	What     string // e.g., "as-of date", "payment date"
	Date     Date
	Boundary Date // the date it must not precede
}

func (e *DateOrderingError) Error() string {
	return fmt.Sprintf("%s %s precedes %s", e.What, e.Date, e.Boundary)
}

func (e *DateOrderingError) Unwrap() error { return ErrInvalidDateOrdering }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid input
// rather than an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration) ||
		errors.Is(err, ErrInvalidDateOrdering) ||
		errors.Is(err, ErrInvalidPayment) ||
		errors.Is(err, ErrDuplicateDocument)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrObligationNotFound)
}
