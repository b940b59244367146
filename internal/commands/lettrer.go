package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/compta/internal/audit"
	"github.com/cleared-dev/compta/internal/lettrage"
)

var errLettrage = errors.New("lettrage refused")

func newLettrerCommand(a *app) *cobra.Command {
	var account, code, dateFlag string
	var lineIDs []string

	cmd := &cobra.Command{
		Use:   "lettrer",
		Short: "Letter a set of lines of one account under a shared code",
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

			lines, err := lettrage.Pick(entries, lineIDs)
			if err != nil {
				return err
			}
			for _, l := range lines {
				if l.AccountNumber != account {
					return fmt.Errorf("%w: line %s is on account %s, not %s", errLettrage, l.ID, l.AccountNumber, account)
				}
				if l.LettrageCode != "" {
					return fmt.Errorf("%w: line %s is already lettered %s", errLettrage, l.ID, l.LettrageCode)
				}
			}
			if code == "" {
				code = lettrage.NextCode(lettrage.UsedCodes(lettrage.Lines(entries), account))
			}

			lettered, res := lettrage.Apply(lines, code, at)
			if !res.Success {
				a.logger.Warn("lettrage refused",
					slog.String("account", account),
					slog.String("reason", string(res.Reason)),
					slog.String("solde", res.Solde.StringFixed(2)))
				return fmt.Errorf("%w: %s (débit %s, crédit %s, écart %s)", errLettrage, res.Reason,
					res.TotalDebit.StringFixed(2), res.TotalCredit.StringFixed(2), res.Solde.StringFixed(2))
			}

			if err := writeJournal(a.journalPath, lettrage.Merge(entries, lettered)); err != nil {
				return err
			}
			if err := a.record(audit.Event{
				Action:  audit.ActionLettrage,
				EntryID: lettered[0].EntryID,
				Details: fmt.Sprintf("%s code %s, %d ligne(s)", account, code, len(lettered)),
			}); err != nil {
				return err
			}
			a.logger.Info("lines lettered", slog.String("account", account), slog.String("code", code), slog.Int("lines", len(lettered)))
			fmt.Fprintf(cmd.OutOrStdout(), "%d ligne(s) lettrée(s) %s sur %s\n", len(lettered), code, account)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "account the lines belong to (required)")
	cmd.Flags().StringSliceVar(&lineIDs, "lines", nil, "comma-separated line IDs (required)")
	cmd.Flags().StringVar(&code, "code", "", "lettrage code (default: next free code on the account)")
	cmd.Flags().StringVar(&dateFlag, "date", "", "lettrage date, YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("lines")
	return cmd
}
