package ledger

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/expense/internal/model"
	"github.com/Veraticus/expense/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) (*Ledger, *storage.SQLiteStorage, *bytes.Buffer) {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))

	out := &bytes.Buffer{}
	return New(store, out), store, out
}

func seedExpense(t *testing.T, store *storage.SQLiteStorage, amount, memo, date string) model.Expense {
	t.Helper()

	createdOn, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)

	expense := model.Expense{
		Amount:    decimal.RequireFromString(amount),
		Memo:      memo,
		CreatedOn: createdOn,
	}
	require.NoError(t, store.CreateExpense(context.Background(), &expense))
	return expense
}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("empty ledger", func(t *testing.T) {
		led, _, out := newTestLedger(t)

		require.NoError(t, led.List(ctx))
		assert.Equal(t, "There are no expenses.\n", out.String())
	})

	t.Run("single expense has no total line", func(t *testing.T) {
		led, store, out := newTestLedger(t)
		seedExpense(t, store, "5.00", "lunch", "2026-01-01")

		require.NoError(t, led.List(ctx))

		want := "There is one expense.\n" +
			"  1 | 2026-01-01 |         5.00 | lunch\n"
		assert.Equal(t, want, out.String())
	})

	t.Run("multiple expenses get separator and total", func(t *testing.T) {
		led, store, out := newTestLedger(t)
		seedExpense(t, store, "5.00", "lunch", "2026-01-01")
		seedExpense(t, store, "7.50", "dinner", "2026-01-02")

		require.NoError(t, led.List(ctx))

		want := "There are 2 expenses.\n" +
			"  1 | 2026-01-01 |         5.00 | lunch\n" +
			"  2 | 2026-01-02 |         7.50 | dinner\n" +
			strings.Repeat("-", 50) + "\n" +
			"Total                    12.50\n"
		assert.Equal(t, want, out.String())
	})

	t.Run("total is decimal-exact", func(t *testing.T) {
		led, store, out := newTestLedger(t)
		// Classic float trap: 0.10 + 0.20 must display as 0.30.
		seedExpense(t, store, "0.10", "a", "2026-01-01")
		seedExpense(t, store, "0.20", "b", "2026-01-01")

		require.NoError(t, led.List(ctx))
		assert.Contains(t, out.String(), "Total                     0.30\n")
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	led, store, out := newTestLedger(t)
	seedExpense(t, store, "12.00", "Lunch with Bob", "2026-01-01")
	seedExpense(t, store, "30.00", "Dinner", "2026-01-02")

	t.Run("case-insensitive match", func(t *testing.T) {
		out.Reset()
		require.NoError(t, led.Search(ctx, "lunch"))

		want := "There is one expense.\n" +
			"  1 | 2026-01-01 |        12.00 | Lunch with Bob\n"
		assert.Equal(t, want, out.String())
	})

	t.Run("no matches uses the zero wording", func(t *testing.T) {
		out.Reset()
		require.NoError(t, led.Search(ctx, "groceries"))
		assert.Equal(t, "There are no expenses.\n", out.String())
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id leaves ledger unchanged", func(t *testing.T) {
		led, store, out := newTestLedger(t)
		seedExpense(t, store, "5.00", "keep me", "2026-01-01")

		require.NoError(t, led.Delete(ctx, 99))
		assert.Equal(t, "There is no expense with id '99'.\n", out.String())

		count, err := store.CountExpenses(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("existing id renders the deleted row once", func(t *testing.T) {
		led, store, out := newTestLedger(t)
		expense := seedExpense(t, store, "5.00", "doomed", "2026-01-01")

		require.NoError(t, led.Delete(ctx, expense.ID))

		want := "The following expense has been deleted:\n" +
			"  1 | 2026-01-01 |         5.00 | doomed\n"
		assert.Equal(t, want, out.String())

		count, err := store.CountExpenses(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestClear(t *testing.T) {
	ctx := context.Background()

	led, store, out := newTestLedger(t)
	seedExpense(t, store, "5.00", "a", "2026-01-01")
	seedExpense(t, store, "7.50", "b", "2026-01-02")

	require.NoError(t, led.Clear(ctx))
	assert.Equal(t, "All expenses have been deleted.\n", out.String())

	count, err := store.CountExpenses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("records expense dated today", func(t *testing.T) {
		led, store, _ := newTestLedger(t)

		require.NoError(t, led.Add(ctx, "10.00", "lunch"))

		expenses, err := store.ListExpenses(ctx)
		require.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, "10.00", expenses[0].Amount.StringFixed(2))
		assert.Equal(t, "lunch", expenses[0].Memo)
		assert.Equal(t, time.Now().Format("2006-01-02"), expenses[0].CreatedOn.Format("2006-01-02"))
	})

	t.Run("invalid amount creates nothing", func(t *testing.T) {
		led, store, _ := newTestLedger(t)

		err := led.Add(ctx, "coffee", "1.50")
		assert.ErrorIs(t, err, model.ErrInvalidAmount)

		count, err := store.CountExpenses(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("zero amount creates nothing", func(t *testing.T) {
		led, store, _ := newTestLedger(t)

		err := led.Add(ctx, "0.00", "free lunch")
		assert.ErrorIs(t, err, model.ErrAmountTooSmall)

		count, err := store.CountExpenses(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}
