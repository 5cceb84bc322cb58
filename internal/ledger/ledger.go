// Package ledger implements the expense ledger operations and their
// console rendering.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Veraticus/expense/internal/model"
	"github.com/Veraticus/expense/internal/storage"
	"github.com/shopspring/decimal"
)

// separatorWidth is the width of the rule above the total line.
const separatorWidth = 50

// Store is the persistence surface the ledger needs.
type Store interface {
	CreateExpense(ctx context.Context, expense *model.Expense) error
	ListExpenses(ctx context.Context) ([]model.Expense, error)
	SearchExpenses(ctx context.Context, query string) ([]model.Expense, error)
	GetExpense(ctx context.Context, id int64) (*model.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
	DeleteAllExpenses(ctx context.Context) error
	CountExpenses(ctx context.Context) (int, error)
}

// Ledger performs expense operations against a Store and renders their
// results to the writer.
type Ledger struct {
	store Store
	out   io.Writer
}

// New creates a ledger writing its output to out.
func New(store Store, out io.Writer) *Ledger {
	return &Ledger{store: store, out: out}
}

// Add parses the amount and records a new expense dated today.
func (l *Ledger) Add(ctx context.Context, amount, memo string) error {
	parsed, err := model.ParseAmount(amount)
	if err != nil {
		return err
	}

	expense := model.Expense{
		Amount:    parsed,
		Memo:      memo,
		CreatedOn: time.Now(),
	}

	if err := l.store.CreateExpense(ctx, &expense); err != nil {
		return fmt.Errorf("failed to record expense: %w", err)
	}
	return nil
}

// List renders every expense with a count line and, when more than one
// row exists, a total line.
func (l *Ledger) List(ctx context.Context) error {
	expenses, err := l.store.ListExpenses(ctx)
	if err != nil {
		return fmt.Errorf("failed to list expenses: %w", err)
	}

	l.render(expenses)
	return nil
}

// Search renders the expenses whose memo contains the query, using the
// same count and total treatment as List.
func (l *Ledger) Search(ctx context.Context, query string) error {
	expenses, err := l.store.SearchExpenses(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to search expenses: %w", err)
	}

	l.render(expenses)
	return nil
}

// Delete removes the expense with the given id and renders it. A missing
// id is reported to the user, not treated as an error.
func (l *Ledger) Delete(ctx context.Context, id int64) error {
	expense, err := l.store.GetExpense(ctx, id)
	if errors.Is(err, storage.ErrExpenseNotFound) {
		fmt.Fprintf(l.out, "There is no expense with id '%d'.\n", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up expense: %w", err)
	}

	if err := l.store.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	fmt.Fprintln(l.out, "The following expense has been deleted:")
	fmt.Fprintln(l.out, formatRow(*expense))
	return nil
}

// Clear removes every expense. Confirmation is the caller's job.
func (l *Ledger) Clear(ctx context.Context) error {
	if err := l.store.DeleteAllExpenses(ctx); err != nil {
		return fmt.Errorf("failed to clear expenses: %w", err)
	}

	fmt.Fprintln(l.out, "All expenses have been deleted.")
	return nil
}

// render writes the count line, one row per expense, and the total line
// when more than one row is shown. The count line always receives the
// row count so list and search behave identically.
func (l *Ledger) render(expenses []model.Expense) {
	fmt.Fprintln(l.out, countLine(len(expenses)))

	for _, expense := range expenses {
		fmt.Fprintln(l.out, formatRow(expense))
	}

	if len(expenses) > 1 {
		total := decimal.Zero
		for _, expense := range expenses {
			total = total.Add(expense.Amount)
		}

		fmt.Fprintln(l.out, strings.Repeat("-", separatorWidth))
		fmt.Fprintf(l.out, "Total%25s\n", total.StringFixed(2))
	}
}

func countLine(n int) string {
	switch n {
	case 0:
		return "There are no expenses."
	case 1:
		return "There is one expense."
	default:
		return fmt.Sprintf("There are %d expenses.", n)
	}
}

func formatRow(expense model.Expense) string {
	return fmt.Sprintf("%3d | %s | %12s | %s",
		expense.ID,
		expense.CreatedOn.Format("2006-01-02"),
		expense.Amount.StringFixed(2),
		expense.Memo,
	)
}
