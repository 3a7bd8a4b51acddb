package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/marusora/internal/snapshot"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the saved session",
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

		snap, err := repo.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		if snap == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "No saved session at %s\n", repo.Location())
			return nil
		}
		return printSnapshot(cmd.OutOrStdout(), repo.Location(), snap)
	},
}

func printSnapshot(w io.Writer, location string, snap *snapshot.Snapshot) error {
	engine, err := snap.Engine()
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	stats := engine.Stats()

	fmt.Fprintf(w, "Saved session:  %s\n", location)
	fmt.Fprintf(w, "Session ID:     %s\n", snap.SessionID)
	if !snap.SavedAt.IsZero() {
		fmt.Fprintf(w, "Saved at:       %s\n", snap.SavedAt.Local().Format(time.DateTime))
	}
	fmt.Fprintf(w, "Format:         %s\n", snap.Version)
	fmt.Fprintf(w, "Entries:        %d\n", snap.Store.Size())
	fmt.Fprintf(w, "Progress:       card %d of %d (%d%%)\n",
		min(engine.QuestionNumber(), engine.TargetCount()), engine.TargetCount(), engine.ProgressPercent())
	fmt.Fprintf(w, "Mode:           %s\n", engine.Mode())
	fmt.Fprintf(w, "Study again:    %d\n", stats.Requeues)
	return nil
}
