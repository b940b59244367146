package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/compta/internal/model"
)

// ErrInconsistent is the sentinel behind every InconsistencyError.
var ErrInconsistent = errors.New("trial balance is inconsistent")

// InconsistencyError reports a trial balance whose grand totals differ. With
// validated entries this cannot happen, so it signals corrupted input.
type InconsistencyError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("trial balance is inconsistent: debits %s != credits %s",
		e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2))
}

func (e *InconsistencyError) Unwrap() error { return ErrInconsistent }

// ComputeTrialBalance aggregates every non-cancelled line per account. Rows
// appear in order of first appearance of their account.
//
// When grand debits and credits differ, the report is still returned together
// with an *InconsistencyError.
func ComputeTrialBalance(entries []model.Entry, period model.Period, opts ...Option) (*model.TrialBalance, error) {
	o := newOptions(opts)

	tb := &model.TrialBalance{
		Period:              period,
		GeneratedAt:         o.generatedAt,
		Lines:               []model.TrialBalanceLine{},
		TotalDebit:          decimal.Zero,
		TotalCredit:         decimal.Zero,
		TotalSoldeDebiteur:  decimal.Zero,
		TotalSoldeCrediteur: decimal.Zero,
	}

	rows := make(map[string]int)
	for _, e := range entries {
		if !e.Status.Reportable() {
			continue
		}
		for _, l := range e.Lines {
			i, ok := rows[l.AccountNumber]
			if !ok {
				i = len(tb.Lines)
				rows[l.AccountNumber] = i
				tb.Lines = append(tb.Lines, model.TrialBalanceLine{
					AccountNumber: l.AccountNumber,
					TotalDebit:    decimal.Zero,
					TotalCredit:   decimal.Zero,
				})
			}
			row := &tb.Lines[i]
			if row.AccountLabel == "" {
				row.AccountLabel = l.AccountLabel
			}
			row.TotalDebit = row.TotalDebit.Add(l.Debit())
			row.TotalCredit = row.TotalCredit.Add(l.Credit())
		}
	}

	for i := range tb.Lines {
		row := &tb.Lines[i]
		row.SoldeDebiteur, row.SoldeCrediteur = split(row.Net())

		tb.TotalDebit = tb.TotalDebit.Add(row.TotalDebit)
		tb.TotalCredit = tb.TotalCredit.Add(row.TotalCredit)
		tb.TotalSoldeDebiteur = tb.TotalSoldeDebiteur.Add(row.SoldeDebiteur)
		tb.TotalSoldeCrediteur = tb.TotalSoldeCrediteur.Add(row.SoldeCrediteur)
	}

	tb.IsBalanced = tb.TotalDebit.Equal(tb.TotalCredit)
	if !tb.IsBalanced {
		return tb, &InconsistencyError{TotalDebit: tb.TotalDebit, TotalCredit: tb.TotalCredit}
	}
	return tb, nil
}

// split returns the one-sided soldes of a net (debit minus credit) balance.
func split(net decimal.Decimal) (debiteur, crediteur decimal.Decimal) {
	if net.IsPositive() {
		return net, decimal.Zero
	}
	return decimal.Zero, net.Neg()
}
