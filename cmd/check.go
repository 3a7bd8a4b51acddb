package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/marusora/internal/deck"
	"github.com/abhisek/marusora/internal/loader"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Load entry files and report what was read",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, args)
		if err != nil {
			return err
		}
		defer e.Close()

		store, rep, err := loader.New(e.cfg.DelimiterRune(), e.logger).LoadFiles(e.cfg.Files)
		if err != nil {
			return fmt.Errorf("load entries: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Files:    %d\n", rep.Files)
		fmt.Fprintf(out, "Entries:  %d\n", rep.Entries)
		fmt.Fprintf(out, "Skipped:  %d\n", rep.Skipped)
		fmt.Fprintf(out, "Deck:     %d cards per session\n",
			deck.EffectiveSize(store.Size(), e.cfg.Number))
		return nil
	},
}
