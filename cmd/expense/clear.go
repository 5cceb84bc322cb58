package main

import (
	"fmt"

	"github.com/Veraticus/expense/internal/cli"
	"github.com/Veraticus/expense/internal/ledger"
	"github.com/spf13/cobra"
)

const clearPrompt = "This will remove all expenses. Are you sure? (enter y to confirm)"

func clearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all expenses",
		Long: `Delete every recorded expense after an interactive confirmation.

Only a response of "y" (in any case) proceeds; anything else leaves the
ledger untouched.`,
		Args: cobra.NoArgs,
		RunE: runClear,
	}

	cmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")

	return cmd
}

func runClear(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	force, _ := cmd.Flags().GetBool("force")
	if !force {
		confirmed, err := cli.Confirm(cmd.InOrStdin(), out, clearPrompt)
		if err != nil {
			return err
		}
		if !confirmed {
			return nil
		}
	}

	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	return ledger.New(store, out).Clear(ctx)
}
