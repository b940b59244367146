package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/compta/internal/buildinfo"
	"github.com/cleared-dev/compta/internal/config"
)

// Environment variables providing flag defaults.
const (
	EnvConfig  = "COMPTA_CONFIG"
	EnvJournal = "COMPTA_JOURNAL"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "compta",
		Short:   "Double-entry bookkeeping: balances, ledgers, lettrage and closing",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = newLogger(cmd.ErrOrStderr(), a.debug, a.jsonLogs)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.journalPath, "journal", envOr(EnvJournal, "journal.csv"), "journal CSV file (env "+EnvJournal+")")
	flags.StringVar(&a.configPath, "config", envOr(EnvConfig, config.FileName), "configuration file (env "+EnvConfig+")")
	flags.StringVar(&a.chartPath, "chart", "", "chart of accounts CSV; when set, lines on unknown accounts are rejected")
	flags.IntVar(&a.year, "year", 0, "fiscal year to report on (default: year of the earliest entry)")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&a.jsonLogs, "json", false, "log as JSON")
	flags.BoolVar(&a.commit, "commit", false, "commit the journal to git after each change")

	rootCmd.AddCommand(
		newInitCommand(a),
		newBalanceCommand(a),
		newGrandLivreCommand(a),
		newAuxiliaireCommand(a),
		newValiderCommand(a),
		newLettrerCommand(a),
		newClotureCommand(a),
		newANouveauCommand(a),
		newReleveCommand(a),
	)

	return rootCmd
}

func newLogger(w io.Writer, debug, asJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
