package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/compta/internal/model"
)

// posting is one reportable line together with its entry.
type posting struct {
	entry *model.Entry
	line  *model.Line
}

// chronological returns every line of the non-cancelled entries in ledger
// order: entry date, then sequence, then entry ID, then position in the entry.
func chronological(entries []model.Entry) []posting {
	order := make([]int, 0, len(entries))
	for i := range entries {
		if entries[i].Status.Reportable() {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		ea, eb := &entries[order[a]], &entries[order[b]]
		if !ea.Date.Equal(eb.Date) {
			return ea.Date.Before(eb.Date)
		}
		if ea.Sequence != eb.Sequence {
			return ea.Sequence < eb.Sequence
		}
		return ea.ID < eb.ID
	})

	var out []posting
	for _, i := range order {
		e := &entries[i]
		for j := range e.Lines {
			out = append(out, posting{entry: e, line: &e.Lines[j]})
		}
	}
	return out
}

func ledgerLine(p posting) model.LedgerLine {
	return model.LedgerLine{
		EntryID:       p.entry.ID,
		LineID:        p.line.ID,
		Journal:       p.entry.Journal,
		Sequence:      p.entry.Sequence,
		Date:          p.entry.Date,
		PieceRef:      p.entry.PieceRef,
		Label:         lineLabel(p),
		AccountNumber: p.line.AccountNumber,
		Debit:         p.line.Debit(),
		Credit:        p.line.Credit(),
		LettrageCode:  p.line.LettrageCode,
	}
}

func lineLabel(p posting) string {
	if p.line.Label != "" {
		return p.line.Label
	}
	return p.entry.Label
}

// fold sets the running balance of each line, starting from opening, and
// returns the totals and the closing balance.
func fold(opening decimal.Decimal, lines []model.LedgerLine) (debit, credit, closing decimal.Decimal) {
	debit, credit, closing = decimal.Zero, decimal.Zero, opening
	for i := range lines {
		debit = debit.Add(lines[i].Debit)
		credit = credit.Add(lines[i].Credit)
		closing = closing.Add(lines[i].Debit).Sub(lines[i].Credit)
		lines[i].RunningBalance = closing
	}
	return debit, credit, closing
}

// ComputeGrandLivre builds the general ledger: for every account, its lines
// in chronological order with a running balance (solde progressif). Accounts
// are sorted by number. Accounts with an opening balance but no activity are
// listed with their opening balance as closing balance.
func ComputeGrandLivre(entries []model.Entry, period model.Period, opts ...Option) *model.GeneralLedger {
	o := newOptions(opts)

	byAccount := make(map[string]*model.LedgerAccount)
	get := func(number string) *model.LedgerAccount {
		acct, ok := byAccount[number]
		if !ok {
			acct = &model.LedgerAccount{AccountNumber: number}
			byAccount[number] = acct
		}
		return acct
	}

	for _, p := range chronological(entries) {
		acct := get(p.line.AccountNumber)
		if acct.AccountLabel == "" {
			acct.AccountLabel = p.line.AccountLabel
		}
		acct.Lines = append(acct.Lines, ledgerLine(p))
	}
	for number := range o.opening {
		get(number)
	}

	numbers := make([]string, 0, len(byAccount))
	for number := range byAccount {
		numbers = append(numbers, number)
	}
	sort.Strings(numbers)

	gl := &model.GeneralLedger{
		Period:      period,
		GeneratedAt: o.generatedAt,
		Accounts:    make([]model.LedgerAccount, 0, len(numbers)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, number := range numbers {
		acct := byAccount[number]
		acct.OpeningBalance = o.openingFor(number)
		acct.TotalDebit, acct.TotalCredit, acct.ClosingBalance = fold(acct.OpeningBalance, acct.Lines)

		gl.TotalDebit = gl.TotalDebit.Add(acct.TotalDebit)
		gl.TotalCredit = gl.TotalCredit.Add(acct.TotalCredit)
		gl.Accounts = append(gl.Accounts, *acct)
	}
	return gl
}
