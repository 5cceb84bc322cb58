// Package model defines the core data types for the expense ledger.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MinAmount is the smallest amount an expense may carry.
var MinAmount = decimal.New(1, -2) // 0.01

// Amount validation errors.
var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrAmountTooSmall = errors.New("amount must be at least 0.01")
)

// Expense is a single monetary ledger entry. Expenses are write-once:
// they are created, read, and deleted, never updated.
type Expense struct {
	CreatedOn time.Time
	Memo      string
	Amount    decimal.Decimal
	ID        int64
}

// ParseAmount parses a user-supplied amount string into an exact decimal.
// A leading currency symbol is tolerated. The amount must be a valid
// decimal with at most two fractional digits and at least 0.01.
func ParseAmount(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "$")

	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	if amount.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("%w: %q has more than two decimal places", ErrInvalidAmount, s)
	}

	if amount.LessThan(MinAmount) {
		return decimal.Zero, fmt.Errorf("%w: got %s", ErrAmountTooSmall, amount.StringFixed(2))
	}

	return amount, nil
}

// Validate ensures the expense has valid data before it reaches storage.
func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Memo) == "" {
		return fmt.Errorf("memo is required")
	}

	if e.Amount.LessThan(MinAmount) {
		return fmt.Errorf("%w: got %s", ErrAmountTooSmall, e.Amount.StringFixed(2))
	}

	if e.CreatedOn.IsZero() {
		return fmt.Errorf("created_on date is required")
	}

	return nil
}
