package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the saved session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, args)
		if err != nil {
			return err
		}
		defer e.Close()

		repo, err := openStore(e)
		if err != nil {
			return err
		}
		defer repo.Close()

		if err := repo.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
		e.logger.Info("snapshot cleared", "path", repo.Location())
		fmt.Fprintf(cmd.OutOrStdout(), "Removed saved session at %s\n", repo.Location())
		return nil
	},
}
