package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/compta/internal/audit"
	"github.com/cleared-dev/compta/internal/model"
	"github.com/cleared-dev/compta/internal/releve"
)

func newReleveCommand(a *app) *cobra.Command {
	var format, bank, suspense string

	cmd := &cobra.Command{
		Use:   "releve <statement.csv>",
		Short: "Import a bank statement as draft bank journal entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := releve.DefaultRegistry()
			parser := registry.Get(format)
			if parser == nil {
				formats := registry.Formats()
				sort.Strings(formats)
				return fmt.Errorf("unknown statement format %q (known: %s)", format, strings.Join(formats, ", "))
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening statement: %w", err)
			}
			defer f.Close()

			txns, err := parser.Parse(f)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			cfg, err := a.config()
			if err != nil {
				return err
			}
			existing, err := a.readJournal()
			if err != nil {
				return err
			}

			seq := 0
			for _, e := range existing {
				if e.Journal == model.JournalBank && e.Sequence > seq {
					seq = e.Sequence
				}
			}
			var periodErr error
			periodOf := func(day time.Time) string {
				fy, err := fiscalFor(cfg, day)
				if err != nil {
					periodErr = err
				}
				return fy.ID
			}

			imported := releve.ToEntries(txns, releve.Accounts{Bank: bank, Suspense: suspense}, periodOf, seq+1)
			if periodErr != nil {
				return periodErr
			}
			fresh := releve.New(existing, imported)
			for i := range fresh {
				fresh[i].Sequence = seq + 1 + i
			}
			a.logger.Info("statement parsed",
				slog.String("file", filepath.Base(args[0])),
				slog.Int("transactions", len(txns)),
				slog.Int("new", len(fresh)))

			if len(fresh) > 0 {
				if err := a.book(fresh); err != nil {
					return err
				}
				if err := a.record(audit.Event{
					Action:  audit.ActionImport,
					Details: fmt.Sprintf("%s: %d écriture(s)", filepath.Base(args[0]), len(fresh)),
				}); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d écriture(s) importée(s), %d déjà présente(s)\n", len(fresh), len(imported)-len(fresh))
			return nil
		},
	}

	def := releve.DefaultAccounts()
	cmd.Flags().StringVar(&format, "format", "fr", "statement format (fr, signed)")
	cmd.Flags().StringVar(&bank, "bank", def.Bank, "bank account")
	cmd.Flags().StringVar(&suspense, "suspense", def.Suspense, "suspense account for the counterpart")
	return cmd
}
