package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/compta/internal/accounts"
	"github.com/cleared-dev/compta/internal/audit"
	"github.com/cleared-dev/compta/internal/config"
	"github.com/cleared-dev/compta/internal/history"
)

func newInitCommand(a *app) *cobra.Command {
	var name, siren string
	var withGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new bookkeeping project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, name, siren); err != nil {
				return err
			}

			a.journalPath = filepath.Join(absDir, "journal.csv")
			if withGit && !history.IsRepo(absDir) {
				if err := history.Init(absDir); err != nil {
					return err
				}
				if _, err := history.Commit(absDir, "init: "+name, config.FileName, accounts.ChartFile, "journal.csv"); err != nil {
					return err
				}
			}
			if err := a.record(audit.Event{Action: audit.ActionInit, Details: name}); err != nil {
				return err
			}
			a.logger.Info("project initialized", slog.String("dir", absDir))
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized project at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&siren, "siren", "", "SIREN number")
	cmd.Flags().BoolVar(&withGit, "git", false, "initialize a git repository and commit the new project")

	return cmd
}

func runInit(dir, name, siren string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	// Write compta.yaml.
	cfg := config.Default(name)
	cfg.Business.Siren = siren
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write chart of accounts.
	svc := accounts.NewService(accounts.DefaultChart())
	if err := svc.Save(dir); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	// Write an empty journal.
	journalPath := filepath.Join(dir, "journal.csv")
	if _, err := os.Stat(journalPath); err == nil {
		return nil
	}
	return writeJournal(journalPath, nil)
}
