package main

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/expense/internal/ledger"
	"github.com/spf13/cobra"
)

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NUMBER",
		Short: "Remove the expense with the given id",
		Args:  cobra.ArbitraryArgs,
		RunE:  runDelete,
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) < 1 {
		fmt.Fprintln(out, "You must provide an expense ID.")
		return nil
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(out, "You must provide a numeric expense ID.")
		return nil
	}

	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	return ledger.New(store, out).Delete(ctx, id)
}
