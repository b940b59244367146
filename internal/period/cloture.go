package period

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/compta/internal/accounts"
	"github.com/cleared-dev/compta/internal/id"
	"github.com/cleared-dev/compta/internal/journal"
	"github.com/cleared-dev/compta/internal/model"
)

// ClotureResult is the closing entry of a period and the result it books.
type ClotureResult struct {
	Entry    model.Entry
	Resultat decimal.Decimal // revenue minus expense; positive is a profit
	Errors   []journal.ValidationError
}

// OK reports whether the closing entry passed validation.
func (r ClotureResult) OK() bool { return len(r.Errors) == 0 }

// OpeningResult is the à-nouveau entry of a new period.
type OpeningResult struct {
	Entry model.Entry
	// Report is the unclosed result (positive is a profit) booked to the
	// result account; zero when the trial balance was taken after closing.
	Report decimal.Decimal
	Errors []journal.ValidationError
}

// OK reports whether the opening entry passed validation.
func (r OpeningResult) OK() bool { return len(r.Errors) == 0 }

// rows returns the trial balance rows selected by keep, sorted by account.
func rows(tb *model.TrialBalance, keep func(string) bool) []model.TrialBalanceLine {
	if tb == nil {
		return nil
	}
	var out []model.TrialBalanceLine
	for _, l := range tb.Lines {
		if keep(l.AccountNumber) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AccountNumber < out[j].AccountNumber
	})
	return out
}

type builder struct {
	entry model.Entry
}

func newBuilder(kind, periodID string, journalCode model.JournalCode, day time.Time, label string) *builder {
	entryID := id.Generated(kind, periodID)
	return &builder{entry: model.Entry{
		ID:       entryID,
		Journal:  journalCode,
		Date:     day,
		Label:    label,
		PieceRef: entryID[:8],
		Status:   model.StatusDraft,
		PeriodID: periodID,
	}}
}

func (b *builder) add(account, label string, mv model.Movement) {
	b.entry.Lines = append(b.entry.Lines, model.Line{
		ID:            id.FormatLineID(b.entry.ID, len(b.entry.Lines)),
		EntryID:       b.entry.ID,
		AccountNumber: account,
		AccountLabel:  label,
		Label:         b.entry.Label,
		Movement:      mv,
	})
}

// addNet posts net (debit minus credit) on its natural side.
func (b *builder) addNet(account, label string, net decimal.Decimal) {
	switch net.Sign() {
	case 1:
		b.add(account, label, model.Debit(net))
	case -1:
		b.add(account, label, model.Credit(net.Neg()))
	}
}

// bookResult posts a result (positive profit, negative loss) to the result
// accounts.
func (b *builder) bookResult(r accounts.Rules, result decimal.Decimal) {
	switch result.Sign() {
	case 1:
		b.add(r.ProfitAccount, "Résultat de l'exercice (bénéfice)", model.Credit(result))
	case -1:
		b.add(r.LossAccount, "Résultat de l'exercice (perte)", model.Debit(result.Neg()))
	}
}

// ComputeClotureExercice builds the closing entry of a period from its trial
// balance: every class 6 and 7 account is brought back to zero and the net
// result is booked to the profit or loss account. The entry is a draft (OD
// journal) with an ID that depends only on periodID.
//
// Business rule violations are reported in Errors; nothing panics.
func ComputeClotureExercice(tb *model.TrialBalance, periodID string, closingDate time.Time, opts ...Option) ClotureResult {
	o := newOptions(opts)
	b := newBuilder(id.KindClosing, periodID, o.closingJournal, closingDate, "Clôture de l'exercice "+periodID)

	result := decimal.Zero
	for _, r := range rows(tb, accounts.IsIncomeStatement) {
		net := r.Net()
		// Reverse the balance: a debit balance is credited and vice versa.
		b.addNet(r.AccountNumber, r.AccountLabel, net.Neg())
		result = result.Sub(net)
	}
	b.bookResult(o.rules, result)

	return ClotureResult{
		Entry:    b.entry,
		Resultat: result,
		Errors:   journal.Validate(b.entry),
	}
}

// ComputeANouveau builds the opening entry of a new period from the closing
// trial balance of the previous one: every class 1 to 5 account opens with
// its balance; zero balances and class 6 and 7 accounts are not carried.
//
// When tb was taken before closing, the income statement accounts still hold
// the result. It is then booked to the result account so the entry balances.
// Balances on accounts outside classes 1 to 7 are never carried; they are
// reported in Errors.
func ComputeANouveau(tb *model.TrialBalance, newPeriodID string, openingDate time.Time, opts ...Option) OpeningResult {
	o := newOptions(opts)
	b := newBuilder(id.KindOpening, newPeriodID, o.openingJournal, openingDate, "À-nouveaux "+newPeriodID)

	for _, r := range rows(tb, accounts.IsBalanceSheet) {
		b.addNet(r.AccountNumber, r.AccountLabel, r.Net())
	}

	result := decimal.Zero
	for _, r := range rows(tb, accounts.IsIncomeStatement) {
		result = result.Sub(r.Net())
	}
	b.bookResult(o.rules, result)

	errs := journal.Validate(b.entry)
	var stray []string
	for _, r := range rows(tb, outsideClosingScope) {
		if !r.Net().IsZero() {
			stray = append(stray, r.AccountNumber+" "+r.Net().StringFixed(2))
		}
	}
	if len(stray) > 0 {
		errs = append(errs, journal.ValidationError{
			Code:    journal.CodeInvalidAccount,
			EntryID: b.entry.ID,
			Message: "balances outside classes 1 to 7 are not carried: " + strings.Join(stray, ", "),
		})
	}

	return OpeningResult{
		Entry:  b.entry,
		Report: result,
		Errors: errs,
	}
}

func outsideClosingScope(account string) bool {
	return !accounts.IsBalanceSheet(account) && !accounts.IsIncomeStatement(account)
}
