package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/compta/internal/audit"
	"github.com/cleared-dev/compta/internal/journal"
	"github.com/cleared-dev/compta/internal/model"
)

// errValidation is returned when at least one entry fails validation; the
// violations themselves are printed.
var errValidation = errors.New("validation failed")

func newValiderCommand(a *app) *cobra.Command {
	var dateFlag string
	var apply bool

	cmd := &cobra.Command{
		Use:   "valider",
		Short: "Validate every entry of the journal, optionally promoting drafts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseDate("date", dateFlag, today())
			if err != nil {
				return err
			}
			entries, err := a.readJournal()
			if err != nil {
				return err
			}
			chart, err := a.chart()
			if err != nil {
				return err
			}

			var errs []journal.ValidationError
			out := make([]model.Entry, 0, len(entries))
			drafts := 0
			for _, e := range entries {
				if !e.Status.Reportable() {
					out = append(out, e)
					continue
				}
				var verrs []journal.ValidationError
				if chart != nil {
					verrs = journal.ValidateAgainstChart(e, chart)
				} else {
					verrs = journal.Validate(e)
				}
				if len(verrs) == 0 && e.Status == model.StatusDraft {
					var v journal.Validated
					if v, verrs = journal.NewDraft(e).Validate(at); len(verrs) == 0 {
						e = v.Entry()
						drafts++
					}
				}
				errs = append(errs, verrs...)
				out = append(out, e)
			}

			for _, ve := range errs {
				fmt.Fprintln(cmd.OutOrStdout(), ve.Error())
			}
			a.logger.Info("journal validated",
				slog.Int("entries", len(entries)),
				slog.Int("violations", len(errs)),
				slog.Int("drafts_validated", drafts))

			if len(errs) > 0 {
				return fmt.Errorf("%w: %d violation(s)", errValidation, len(errs))
			}
			if apply && drafts > 0 {
				if err := writeJournal(a.journalPath, out); err != nil {
					return err
				}
				if err := a.record(audit.Event{
					Action:  audit.ActionValidate,
					Details: fmt.Sprintf("%d brouillard(s) validé(s) au %s", drafts, at.Format(dateLayout)),
				}); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d écriture(s) valide(s)\n", len(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "validation date for drafts, YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&apply, "apply", false, "rewrite the journal with drafts marked VALIDE")
	return cmd
}
