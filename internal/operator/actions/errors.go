package actions

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
)

// ValidationError rejects malformed input: non-positive amounts, reversed
// periods, missing required fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError signals that a referenced record does not exist.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// ConflictError rejects cross-owner references and degenerate pairs such
// as a transfer from an account to itself.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func conflictf(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientFundsError rejects a mutation that would drive the named
// account's balance negative.
type InsufficientFundsError struct {
	AccountID uuid.UUID
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds on account %s", e.AccountID)
}

// BudgetExceededError rejects an expense that would breach a budget over
// the named inclusive period.
type BudgetExceededError struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("budget exceeded for period %s to %s",
		e.PeriodStart.Format("2006-01-02"), e.PeriodEnd.Format("2006-01-02"))
}

// CannotDeleteError refuses a deletion whose monetary reversal would
// itself violate a balance invariant. Nothing is removed.
type CannotDeleteError struct {
	Message string
}

func (e *CannotDeleteError) Error() string {
	return e.Message
}

func cannotDeletef(format string, args ...interface{}) error {
	return &CannotDeleteError{Message: fmt.Sprintf(format, args...)}
}
