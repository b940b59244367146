package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/compta/internal/audit"
	"github.com/cleared-dev/compta/internal/config"
	"github.com/cleared-dev/compta/internal/journal"
	"github.com/cleared-dev/compta/internal/model"
	"github.com/cleared-dev/compta/internal/period"
)

// emit sends a generated entry to --out or stdout, or books it with --append.
func (a *app) emit(cmd *cobra.Command, outPath string, appendTo bool, entry model.Entry, ev audit.Event) error {
	if !appendTo {
		return writeEntries(cmd.OutOrStdout(), outPath, []model.Entry{entry})
	}
	if err := a.book([]model.Entry{entry}); err != nil {
		return err
	}
	ev.EntryID = entry.ID
	if err := a.record(ev); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "écriture %s ajoutée au journal (%d lignes)\n", entry.ID, len(entry.Lines))
	return nil
}

var errAlreadyClosed = errors.New("period already closed")

// closeDefinitively closes f in the journal: its entries are rewritten as
// CLOTURE together with the closing entry, and the à-nouveau of the
// following year is booked.
func (a *app) closeDefinitively(cmd *cobra.Command, cfg *config.Config, f period.Fiscal, closingDate time.Time) error {
	all, err := a.readJournal()
	if err != nil {
		return err
	}
	var inside, outside []model.Entry
	for _, e := range all {
		if !f.Contains(e.Date) {
			outside = append(outside, e)
			continue
		}
		if e.Status == model.StatusClosed {
			return fmt.Errorf("%w: %s (entry %s)", errAlreadyClosed, f.ID, e.ID)
		}
		inside = append(inside, e)
	}

	next, err := period.Year(f.Start.Year()+1, cfg.Fiscal.YearStart)
	if err != nil {
		return err
	}
	closing, err := period.Close(f, inside, closingDate, next.ID,
		period.WithRules(cfg.Rules()),
		period.WithJournals(cfg.ClosingJournal(), cfg.OpeningJournal()))
	if err != nil {
		return err
	}

	if !closing.ANouveau.OK() {
		return fmt.Errorf("%w: %s", errValidation, journal.Errors(closing.ANouveau.Errors))
	}
	books := closing.Entries
	if an := closing.ANouveau.Entry; len(an.Lines) > 0 {
		// A draft à-nouveau booked before the closing is superseded.
		kept := outside[:0:0]
		for _, e := range outside {
			if e.ID == an.ID && e.Status == model.StatusDraft {
				a.logger.Info("replacing draft opening entry", slog.String("entry", an.ID))
				continue
			}
			kept = append(kept, e)
		}
		outside = append(kept, an)
	}
	books = append(books, outside...)
	if err := uniqueIDs(books); err != nil {
		return err
	}
	if err := writeJournal(a.journalPath, books); err != nil {
		return err
	}
	a.logger.Info("period closed",
		slog.String("period", closing.Period.ID),
		slog.String("status", string(closing.Period.Status)),
		slog.String("resultat", closing.Cloture.Resultat.StringFixed(2)),
		slog.Int("entries", len(closing.Entries)))

	if err := a.record(audit.Event{
		Action:   audit.ActionCloture,
		PeriodID: closing.Period.ID,
		EntryID:  closing.Cloture.Entry.ID,
		Details:  fmt.Sprintf("clôture définitive, résultat %s", closing.Cloture.Resultat.StringFixed(2)),
	}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exercice %s clôturé (%s), résultat %s, à-nouveaux %s\n",
		closing.Period.ID, closing.Period.Status, closing.Cloture.Resultat.StringFixed(2), closing.Following.ID)
	return nil
}

func newClotureCommand(a *app) *cobra.Command {
	var dateFlag, outPath string
	var appendTo, definitive bool

	cmd := &cobra.Command{
		Use:   "cloture",
		Short: "Compute the year-end closing entry of the period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, f, entries, err := a.load()
			if err != nil {
				return err
			}
			closingDate, err := parseDate("date", dateFlag, f.End)
			if err != nil {
				return err
			}
			if definitive {
				return a.closeDefinitively(cmd, cfg, f, closingDate)
			}
			tb, err := a.trialBalance(f, entries)
			if err != nil {
				return err
			}

			res := period.ComputeClotureExercice(tb, f.ID, closingDate,
				period.WithRules(cfg.Rules()),
				period.WithJournals(cfg.ClosingJournal(), cfg.OpeningJournal()))
			if len(res.Entry.Lines) == 0 {
				a.logger.Info("no income statement balance to close", slog.String("period", f.ID))
				return nil
			}
			if !res.OK() {
				return fmt.Errorf("%w: %s", errValidation, journal.Errors(res.Errors))
			}
			a.logger.Info("closing entry computed",
				slog.String("period", f.ID),
				slog.String("resultat", res.Resultat.StringFixed(2)),
				slog.Int("lines", len(res.Entry.Lines)))

			return a.emit(cmd, outPath, appendTo, res.Entry, audit.Event{
				Action:   audit.ActionCloture,
				PeriodID: f.ID,
				Details:  "résultat " + res.Resultat.StringFixed(2),
			})
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "closing date, YYYY-MM-DD (default: end of period)")
	cmd.Flags().StringVar(&outPath, "out", "", "write the entry to this CSV file instead of stdout")
	cmd.Flags().BoolVar(&appendTo, "append", false, "append the entry to the journal")
	cmd.Flags().BoolVar(&definitive, "definitive", false, "close the period: validate and lock its entries, book the closing and opening entries")
	cmd.MarkFlagsMutuallyExclusive("out", "append", "definitive")
	return cmd
}

func newANouveauCommand(a *app) *cobra.Command {
	var dateFlag, outPath, newPeriod string
	var appendTo bool

	cmd := &cobra.Command{
		Use:   "a-nouveau",
		Short: "Compute the opening entry of the following period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, f, entries, err := a.load()
			if err != nil {
				return err
			}
			next, err := period.Year(f.Start.Year()+1, cfg.Fiscal.YearStart)
			if err != nil {
				return err
			}
			if newPeriod != "" {
				next = f.Following(newPeriod)
			}
			openingDate, err := parseDate("date", dateFlag, next.Start)
			if err != nil {
				return err
			}
			tb, err := a.trialBalance(f, entries)
			if err != nil {
				return err
			}

			res := period.ComputeANouveau(tb, next.ID, openingDate,
				period.WithRules(cfg.Rules()),
				period.WithJournals(cfg.ClosingJournal(), cfg.OpeningJournal()))
			if !res.OK() {
				return fmt.Errorf("%w: %s", errValidation, journal.Errors(res.Errors))
			}
			if !res.Report.IsZero() {
				a.logger.Warn("period not closed, result carried to the result account",
					slog.String("period", f.ID),
					slog.String("report", res.Report.StringFixed(2)))
			}
			a.logger.Info("opening entry computed",
				slog.String("period", next.ID),
				slog.Int("lines", len(res.Entry.Lines)))

			return a.emit(cmd, outPath, appendTo, res.Entry, audit.Event{
				Action:   audit.ActionANouveau,
				PeriodID: next.ID,
				Details:  fmt.Sprintf("report de %s", f.ID),
			})
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "opening date, YYYY-MM-DD (default: start of the next period)")
	cmd.Flags().StringVar(&newPeriod, "period", "", "ID of the new period (default: derived from the fiscal year)")
	cmd.Flags().StringVar(&outPath, "out", "", "write the entry to this CSV file instead of stdout")
	cmd.Flags().BoolVar(&appendTo, "append", false, "append the entry to the journal")
	cmd.MarkFlagsMutuallyExclusive("out", "append")
	return cmd
}
