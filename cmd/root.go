package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/marusora/internal/config"
	"github.com/abhisek/marusora/internal/logging"
	"github.com/abhisek/marusora/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "marusora [flags] FILE...",
	Short: "Terminal flashcards",
	Long: "Marusora draws a random deck from prompt/response files and quizzes you card by card.\n" +
		"Press q to save the session and pick it up again on the next run.",
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.PersistentFlags()
	f.IntP("number", "n", config.DefaultNumber, "Number of cards to study (negative for all)")
	f.StringP("save", "s", config.DefaultSavePath, "Session save file (.db/.sqlite for SQLite, anything else for JSON)")
	f.Uint64("seed", 0, "Seed for the deck draw (0 for random)")
	f.String("resume", config.DefaultResume, "Resume a saved session: ask, yes or no")
	f.StringP("delimiter", "d", config.DefaultDelimiter, `Field delimiter for text files ("tab" for a tab)`)
	f.String("log-file", "", "Write JSON logs to this file")
	f.String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn or error")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(checkCmd)
}

// env is what every command needs after flag parsing.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
}

func (e *env) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// setup resolves configuration and logging for cmd.
func setup(cmd *cobra.Command, args []string) (*env, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	cfg.Files = args

	logger, closer, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}
	logger = logger.With("command", cmd.Name())
	return &env{cfg: cfg, logger: logger, closer: closer}, nil
}

// openStore opens the snapshot repo named by the config.
func openStore(e *env) (store.SnapshotRepo, error) {
	repo, err := store.Open(e.cfg.SavePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.logger.Debug("store opened", "path", repo.Location())
	return repo, nil
}
