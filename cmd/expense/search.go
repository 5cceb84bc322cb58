package main

import (
	"fmt"

	"github.com/Veraticus/expense/internal/ledger"
	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "List expenses with a matching memo field",
		Long:  `Display the expenses whose memo contains QUERY, ignoring case.`,
		Args:  cobra.ArbitraryArgs,
		RunE:  runSearch,
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) < 1 {
		fmt.Fprintln(out, "You must provide a memo.")
		return nil
	}

	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	return ledger.New(store, out).Search(ctx, args[0])
}
