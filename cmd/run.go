package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/marusora/internal/app"
	"github.com/abhisek/marusora/internal/deck"
	"github.com/abhisek/marusora/internal/loader"
)

// errNoFiles is returned when a fresh session is needed but no files were given.
var errNoFiles = errors.New("no input files: pass one or more FILE arguments")

// runApp opens the store, wires the loader, and launches the TUI.
func runApp(cmd *cobra.Command, args []string) error {
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

	ld := loader.New(e.cfg.DelimiterRune(), e.logger)
	entries := func() (*deck.Store, error) {
		if len(e.cfg.Files) == 0 {
			return nil, errNoFiles
		}
		store, _, err := ld.LoadFiles(e.cfg.Files)
		if err != nil {
			return nil, fmt.Errorf("load entries: %w", err)
		}
		return store, nil
	}

	return app.Run(cmd.Context(), app.Options{
		Repo:    repo,
		Entries: entries,
		Number:  e.cfg.Number,
		Seed:    e.cfg.Seed,
		Resume:  e.cfg.Resume,
		Logger:  e.logger,
	})
}
