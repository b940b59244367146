package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/compta/internal/export"
	"github.com/cleared-dev/compta/internal/ledger"
	"github.com/cleared-dev/compta/internal/model"
)

func amount(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.StringFixed(2)
}

func writeXLSX(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newBalanceCommand(a *app) *cobra.Command {
	var xlsxPath string
	var prefixes []string

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Print the trial balance (balance générale)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, f, entries, err := a.load()
			if err != nil {
				return err
			}
			tb, tbErr := a.trialBalance(f, entries)

			if xlsxPath != "" {
				if err := writeXLSX(xlsxPath, func(w io.Writer) error { return export.WriteTrialBalance(w, tb) }); err != nil {
					return err
				}
				a.logger.Info("trial balance exported", slog.String("path", xlsxPath))
			}
			if err := printTrialBalance(cmd.OutOrStdout(), tb); err != nil {
				return err
			}
			if len(prefixes) > 0 {
				idx := ledger.NewIndex(tb)
				for _, p := range prefixes {
					fmt.Fprintf(cmd.OutOrStdout(), "Solde %s: %s (débiteur %s, créditeur %s)\n", p,
						idx.PrefixBalance(p).StringFixed(2), idx.DebitBalance(p).StringFixed(2), idx.CreditBalance(p).StringFixed(2))
				}
			}
			return tbErr
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write the report to this XLSX file")
	cmd.Flags().StringSliceVar(&prefixes, "solde", nil, "also print the balance of these account prefixes, e.g. 6,7,41")
	return cmd
}

func printTrialBalance(out io.Writer, tb *model.TrialBalance) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "Compte\tLibellé\tDébit\tCrédit\tSolde D\tSolde C\t\n")
	for _, l := range tb.Lines {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n", l.AccountNumber, l.AccountLabel,
			amount(l.TotalDebit), amount(l.TotalCredit), amount(l.SoldeDebiteur), amount(l.SoldeCrediteur))
	}
	fmt.Fprintf(w, "Total\t\t%s\t%s\t%s\t%s\t\n", tb.TotalDebit.StringFixed(2), tb.TotalCredit.StringFixed(2),
		tb.TotalSoldeDebiteur.StringFixed(2), tb.TotalSoldeCrediteur.StringFixed(2))
	if err := w.Flush(); err != nil {
		return err
	}
	if tb.IsBalanced {
		_, err := fmt.Fprintln(out, "Balance équilibrée")
		return err
	}
	_, err := fmt.Fprintf(out, "Balance déséquilibrée: écart %s\n", tb.TotalDebit.Sub(tb.TotalCredit).StringFixed(2))
	return err
}

func newGrandLivreCommand(a *app) *cobra.Command {
	var xlsxPath, prefix string

	cmd := &cobra.Command{
		Use:   "grand-livre",
		Short: "Print the general ledger with running balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, f, entries, err := a.load()
			if err != nil {
				return err
			}
			gl := ledger.ComputeGrandLivre(entries, f.Period())
			if prefix != "" {
				var kept []model.LedgerAccount
				for _, acct := range gl.Accounts {
					if strings.HasPrefix(acct.AccountNumber, prefix) {
						kept = append(kept, acct)
					}
				}
				gl.Accounts = kept
			}
			a.logger.Info("general ledger built", slog.String("period", f.ID), slog.Int("accounts", len(gl.Accounts)))

			if xlsxPath != "" {
				if err := writeXLSX(xlsxPath, func(w io.Writer) error { return export.WriteGeneralLedger(w, gl) }); err != nil {
					return err
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, acct := range gl.Accounts {
				fmt.Fprintf(w, "%s %s\n", acct.AccountNumber, acct.AccountLabel)
				printLedgerLines(w, acct.Lines)
				fmt.Fprintf(w, "\tTotal\t\t\t%s\t%s\t%s\t\n\n", acct.TotalDebit.StringFixed(2), acct.TotalCredit.StringFixed(2), acct.ClosingBalance.StringFixed(2))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write the report to this XLSX file")
	cmd.Flags().StringVar(&prefix, "account", "", "only accounts starting with this prefix")
	return cmd
}

func printLedgerLines(w io.Writer, lines []model.LedgerLine) {
	for _, l := range lines {
		fmt.Fprintf(w, "\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n", l.Date.Format(dateLayout), l.Journal, l.Label,
			amount(l.Debit), amount(l.Credit), l.RunningBalance.StringFixed(2), l.LettrageCode)
	}
}

func newAuxiliaireCommand(a *app) *cobra.Command {
	var xlsxPath, kindFlag string

	cmd := &cobra.Command{
		Use:   "auxiliaire",
		Short: "Print the subsidiary ledger of clients or suppliers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := ledger.ParseSubsidiaryKind(kindFlag)
			if err != nil {
				return err
			}
			cfg, f, entries, err := a.load()
			if err != nil {
				return err
			}
			sl, err := ledger.ComputeBalanceAuxiliaire(entries, kind, f.Period(), ledger.WithRules(cfg.Rules()))
			if err != nil {
				return err
			}
			a.logger.Info("subsidiary ledger built", slog.String("kind", string(kind)), slog.Int("accounts", len(sl.Accounts)))

			if xlsxPath != "" {
				if err := writeXLSX(xlsxPath, func(w io.Writer) error { return export.WriteSubsidiaryLedger(w, sl) }); err != nil {
					return err
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, acct := range sl.Accounts {
				fmt.Fprintf(w, "%s %s\n", acct.AuxAccount, acct.AuxLabel)
				printLedgerLines(w, acct.Lines)
				fmt.Fprintf(w, "\tSolde\t\t\t%s\t%s\t%s\t\n\n", acct.TotalDebit.StringFixed(2), acct.TotalCredit.StringFixed(2), acct.Solde.StringFixed(2))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write the report to this XLSX file")
	cmd.Flags().StringVar(&kindFlag, "type", "clients", "clients or fournisseurs")
	return cmd
}
