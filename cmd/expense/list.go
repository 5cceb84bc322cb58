package main

import (
	"fmt"

	"github.com/Veraticus/expense/internal/ledger"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all expenses",
		Long: `Display every recorded expense, oldest first, with a running total
when more than one expense exists.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	return ledger.New(store, cmd.OutOrStdout()).List(ctx)
}
