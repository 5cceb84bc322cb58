package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/expense/internal/model"
	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// dateLayout is the calendar-date format used for the created_on column.
const dateLayout = "2006-01-02"

const expenseColumns = `id, amount, memo, created_on`

// CreateExpense inserts a new expense and sets its ID from the database.
func (s *SQLiteStorage) CreateExpense(ctx context.Context, expense *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}

	query := `
		INSERT INTO expenses (amount, memo, created_on)
		VALUES (?, ?, ?)`

	// Amounts are bound as fixed two-decimal strings so the column's
	// numeric CHECK constraint sees an exact value.
	result, err := s.db.ExecContext(ctx, query,
		expense.Amount.StringFixed(2), expense.Memo, expense.CreatedOn.Format(dateLayout),
	)
	if err != nil {
		return translateConstraint(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	expense.ID = id
	slog.Info("created expense", "id", id, "amount", expense.Amount.StringFixed(2))
	return nil
}

// ListExpenses returns every expense ordered by creation date, oldest
// first, with insertion order breaking date ties.
func (s *SQLiteStorage) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		ORDER BY created_on, id`

	return s.queryExpenses(ctx, query)
}

// SearchExpenses returns expenses whose memo contains the query as a
// case-insensitive substring, in the same order as ListExpenses.
func (s *SQLiteStorage) SearchExpenses(ctx context.Context, query string) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(query, "query"); err != nil {
		return nil, err
	}

	// LIKE is case-insensitive for ASCII in SQLite. Wildcards in the
	// query are escaped so it always means a literal substring.
	stmt := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE memo LIKE '%' || ? || '%' ESCAPE '\'
		ORDER BY created_on, id`

	return s.queryExpenses(ctx, stmt, escapeLike(query))
}

// GetExpense retrieves a single expense by id.
func (s *SQLiteStorage) GetExpense(ctx context.Context, id int64) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE id = ?`

	// The amount is scanned as a string to stay decimal-exact; the DATE
	// column comes back from the driver as a time.Time already.
	var (
		expense model.Expense
		amount  string
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID, &amount, &expense.Memo, &expense.CreatedOn,
	)

	if err == sql.ErrNoRows {
		return nil, ErrExpenseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query expense: %w", err)
	}

	if expense.Amount, err = parseStoredAmount(amount); err != nil {
		return nil, err
	}
	return &expense, nil
}

// DeleteExpense removes the expense with the given id.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrExpenseNotFound
	}

	slog.Info("deleted expense", "id", id)
	return nil
}

// DeleteAllExpenses removes every expense.
func (s *SQLiteStorage) DeleteAllExpenses(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("failed to delete expenses: %w", err)
	}

	slog.Info("deleted all expenses")
	return nil
}

// CountExpenses returns the number of persisted expenses.
func (s *SQLiteStorage) CountExpenses(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	return count, nil
}

func (s *SQLiteStorage) queryExpenses(ctx context.Context, query string, args ...any) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		var (
			expense model.Expense
			amount  string
		)
		if err := rows.Scan(&expense.ID, &amount, &expense.Memo, &expense.CreatedOn); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if expense.Amount, err = parseStoredAmount(amount); err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	slog.Debug("retrieved expenses", "count", len(expenses))
	return expenses, nil
}

// parseStoredAmount converts the raw amount column, which is scanned as
// a string so the value stays decimal-exact.
func parseStoredAmount(amount string) (decimal.Decimal, error) {
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse stored amount %q: %w", amount, err)
	}
	return parsed, nil
}

// escapeLike makes LIKE metacharacters in a search query literal.
func escapeLike(query string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(query)
}

// translateConstraint maps a SQLite CHECK violation on the amount column
// to the validation error the command layer reports to the user.
func translateConstraint(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintCheck {
		return fmt.Errorf("%w: rejected by database constraint", model.ErrAmountTooSmall)
	}
	return fmt.Errorf("failed to create expense: %w", err)
}
