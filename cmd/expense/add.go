package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/expense/internal/cli"
	"github.com/Veraticus/expense/internal/ledger"
	"github.com/Veraticus/expense/internal/model"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add AMOUNT MEMO",
		Short: "Record a new expense",
		Long: `Record a new expense dated today.

The amount must be a positive decimal with at most two decimal places,
and at least 0.01. Everything after the amount becomes the memo.`,
		Args: cobra.ArbitraryArgs,
		RunE: runAdd,
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) < 2 {
		fmt.Fprintln(out, "You must provide an amount and memo.")
		return nil
	}

	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	memo := strings.Join(args[1:], " ")

	led := ledger.New(store, out)
	if err := led.Add(ctx, args[0], memo); err != nil {
		// Malformed amounts are user errors, not failures.
		if errors.Is(err, model.ErrInvalidAmount) || errors.Is(err, model.ErrAmountTooSmall) {
			fmt.Fprintln(out, cli.FormatError(err.Error()))
			return nil
		}
		return err
	}

	return nil
}
