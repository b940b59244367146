package period

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/compta/internal/accounts"
	"github.com/cleared-dev/compta/internal/id"
	"github.com/cleared-dev/compta/internal/journal"
	"github.com/cleared-dev/compta/internal/ledger"
	"github.com/cleared-dev/compta/internal/model"
)

func TestComputeClotureExercice_Profit(t *testing.T) {
	entries := []model.Entry{
		simple("e1", model.StatusValidated, "411", "706", "10000"),
		simple("e2", model.StatusValidated, "607", "401", "3000"),
	}
	tb, err := ledger.ComputeTrialBalance(entries, model.Period{ID: "2025"})
	require.NoError(t, err)

	res := ComputeClotureExercice(tb, "2025", date(2025, 12, 31))
	assert.True(t, res.OK(), journal.Errors(res.Errors))
	assert.Empty(t, res.Errors)
	assert.True(t, res.Resultat.Equal(dec("7000")), "resultat %s", res.Resultat)

	e := res.Entry
	assert.Equal(t, id.Generated(id.KindClosing, "2025"), e.ID)
	assert.Equal(t, model.JournalMisc, e.Journal)
	assert.Equal(t, model.StatusDraft, e.Status)
	assert.Equal(t, "2025", e.PeriodID)
	assert.Equal(t, date(2025, 12, 31), e.Date)
	assert.True(t, e.IsBalanced())
	require.Len(t, e.Lines, 3)

	expense, ok := lineFor(e, "607")
	require.True(t, ok)
	assert.Equal(t, model.SideCredit, expense.Movement.Side())
	assert.True(t, expense.Credit().Equal(dec("3000")))

	revenue, ok := lineFor(e, "706")
	require.True(t, ok)
	assert.True(t, revenue.Debit().Equal(dec("10000")))

	profit, ok := lineFor(e, "120")
	require.True(t, ok)
	assert.True(t, profit.Credit().Equal(dec("7000")))

	_, ok = lineFor(e, "411")
	assert.False(t, ok, "balance sheet accounts are not closed")

	for i, l := range e.Lines {
		assert.Equal(t, id.FormatLineID(e.ID, i), l.ID)
		assert.Equal(t, e.ID, l.EntryID)
	}
}

func TestComputeClotureExercice_Loss(t *testing.T) {
	tb := &model.TrialBalance{Lines: []model.TrialBalanceLine{
		tbRow("706", "0", "2000"),
		tbRow("613", "1500", "0"),
		tbRow("607", "3500", "0"),
		tbRow("512", "0", "3000"),
	}}

	res := ComputeClotureExercice(tb, "2025", date(2025, 12, 31))
	require.Empty(t, res.Errors)
	assert.True(t, res.Resultat.Equal(dec("-3000")))

	loss, ok := lineFor(res.Entry, "129")
	require.True(t, ok)
	assert.True(t, loss.Debit().Equal(dec("3000")))
	_, ok = lineFor(res.Entry, "120")
	assert.False(t, ok)

	// Sorted by account number, result line last.
	var got []string
	for _, l := range res.Entry.Lines {
		got = append(got, l.AccountNumber)
	}
	assert.Equal(t, []string{"607", "613", "706", "129"}, got)
}

func TestComputeClotureExercice_BreakEven(t *testing.T) {
	tb := &model.TrialBalance{Lines: []model.TrialBalanceLine{
		tbRow("706", "0", "500"),
		tbRow("607", "500", "0"),
	}}
	res := ComputeClotureExercice(tb, "2025", date(2025, 12, 31))
	assert.Empty(t, res.Errors)
	assert.True(t, res.Resultat.IsZero())
	assert.Len(t, res.Entry.Lines, 2)
}

func TestComputeClotureExercice_ZeroRowsSkipped(t *testing.T) {
	tb := &model.TrialBalance{Lines: []model.TrialBalanceLine{
		tbRow("706", "100", "100"),
		tbRow("708", "0", "50"),
	}}
	res := ComputeClotureExercice(tb, "2025", date(2025, 12, 31))
	assert.Empty(t, res.Errors)
	_, ok := lineFor(res.Entry, "706")
	assert.False(t, ok)
	assert.Len(t, res.Entry.Lines, 2)
}

func TestComputeClotureExercice_NothingToClose(t *testing.T) {
	tb := &model.TrialBalance{Lines: []model.TrialBalanceLine{tbRow("512", "100", "0"), tbRow("101", "0", "100")}}
	res := ComputeClotureExercice(tb, "2025", date(2025, 12, 31))
	assert.False(t, res.OK())
	assert.True(t, journal.Has(res.Errors, journal.CodeNoLines))
	assert.True(t, res.Resultat.IsZero())

	res = ComputeClotureExercice(nil, "2025", date(2025, 12, 31))
	assert.False(t, res.OK())
}

func TestComputeClotureExercice_Options(t *testing.T) {
	tb := &model.TrialBalance{Lines: []model.TrialBalanceLine{
		tbRow("706", "0", "100"),
		tbRow("512", "100", "0"),
	}}
	res := ComputeClotureExercice(tb, "2025", date(2025, 12, 31),
		WithRules(accounts.Rules{ProfitAccount: "1201"}),
		WithJournals(model.JournalExceptional, ""))

	assert.Equal(t, model.JournalExceptional, res.Entry.Journal)
	_, ok := lineFor(res.Entry, "1201")
	assert.True(t, ok)
}

func TestComputeClotureExercice_Idempotent(t *testing.T) {
	tb := &model.TrialBalance{Lines: []model.TrialBalanceLine{
		tbRow("706", "0", "10000"),
		tbRow("607", "3000", "0"),
	}}
	a := ComputeClotureExercice(tb, "2025", date(2025, 12, 31))
	b := ComputeClotureExercice(tb, "2025", date(2025, 12, 31))
	assert.Equal(t, a, b)

	c := ComputeClotureExercice(tb, "2026", date(2026, 12, 31))
	assert.NotEqual(t, a.Entry.ID, c.Entry.ID)
}

func TestComputeANouveau(t *testing.T) {
	entries := []model.Entry{simple("e1", model.StatusValidated, "512", "706", "10000")}
	tb, err := ledger.ComputeTrialBalance(entries, model.Period{ID: "2025"})
	require.NoError(t, err)

	res := ComputeANouveau(tb, "2026", date(2026, 1, 1))
	assert.True(t, res.OK(), journal.Errors(res.Errors))

	e := res.Entry
	assert.Equal(t, id.Generated(id.KindOpening, "2026"), e.ID)
	assert.Equal(t, model.JournalOpening, e.Journal)
	assert.Equal(t, model.StatusDraft, e.Status)
	assert.Equal(t, "2026", e.PeriodID)

	bank, ok := lineFor(e, "512")
	require.True(t, ok, "512 is carried forward")
	assert.True(t, bank.Debit().Equal(dec("10000")))

	_, ok = lineFor(e, "706")
	assert.False(t, ok, "706 is not carried forward")

	// The unclosed profit goes to the result account.
	assert.True(t, res.Report.Equal(dec("10000")))
	profit, ok := lineFor(e, "120")
	require.True(t, ok)
	assert.True(t, profit.Credit().Equal(dec("10000")))
	assert.True(t, e.IsBalanced())
}

func TestComputeANouveau_AfterClosing(t *testing.T) {
	tb := &model.TrialBalance{Lines: []model.TrialBalanceLine{
		tbRow("512", "12000", "2000"),
		tbRow("401", "0", "3000"),
		tbRow("120", "0", "7000"),
		tbRow("411", "500", "500"),
		tbRow("706", "10000", "10000"),
	}}
	res := ComputeANouveau(tb, "2026", date(2026, 1, 1))
	require.Empty(t, res.Errors)
	assert.True(t, res.Report.IsZero())

	var got []string
	for _, l := range res.Entry.Lines {
		got = append(got, l.AccountNumber+":"+l.Movement.String())
	}
	assert.Equal(t, []string{"120:credit 7000.00", "401:credit 3000.00", "512:debit 10000.00"}, got)
}

func TestComputeANouveau_UnclosedLoss(t *testing.T) {
	tb := &model.TrialBalance{Lines: []model.TrialBalanceLine{
		tbRow("512", "0", "400"),
		tbRow("607", "400", "0"),
	}}
	res := ComputeANouveau(tb, "2026", date(2026, 1, 1))
	require.Empty(t, res.Errors)
	assert.True(t, res.Report.Equal(dec("-400")))
	loss, ok := lineFor(res.Entry, "129")
	require.True(t, ok)
	assert.True(t, loss.Debit().Equal(dec("400")))
}

func TestComputeANouveau_AccountsOutsideClasses(t *testing.T) {
	tb := &model.TrialBalance{Lines: []model.TrialBalanceLine{
		tbRow("512", "100", "0"),
		tbRow("706", "0", "60"),
		tbRow("801", "0", "40"),
	}}
	res := ComputeANouveau(tb, "2026", date(2026, 1, 1))
	assert.True(t, res.Report.Equal(dec("60")), "only class 6 and 7 make the result")

	profit, ok := lineFor(res.Entry, "120")
	require.True(t, ok)
	assert.True(t, profit.Credit().Equal(dec("60")))
	_, ok = lineFor(res.Entry, "801")
	assert.False(t, ok)

	require.False(t, res.OK())
	assert.True(t, journal.Has(res.Errors, journal.CodeInvalidAccount))
	assert.True(t, journal.Has(res.Errors, journal.CodeUnbalanced))
	assert.Contains(t, journal.Errors(res.Errors), "801 -40.00")
}

func TestComputeANouveau_Empty(t *testing.T) {
	res := ComputeANouveau(&model.TrialBalance{}, "2026", date(2026, 1, 1))
	assert.False(t, res.OK())
	assert.True(t, journal.Has(res.Errors, journal.CodeNoLines))
}

func TestComputeANouveau_Idempotent(t *testing.T) {
	tb := &model.TrialBalance{Lines: []model.TrialBalanceLine{tbRow("512", "10", "0"), tbRow("101", "0", "10")}}
	assert.Equal(t, ComputeANouveau(tb, "2026", date(2026, 1, 1)), ComputeANouveau(tb, "2026", date(2026, 1, 1)))
}
