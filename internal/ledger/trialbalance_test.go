package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/compta/internal/model"
)

func row(t *testing.T, tb *model.TrialBalance, account string) model.TrialBalanceLine {
	t.Helper()
	for _, l := range tb.Lines {
		if l.AccountNumber == account {
			return l
		}
	}
	t.Fatalf("account %s not in trial balance", account)
	return model.TrialBalanceLine{}
}

func TestComputeTrialBalance(t *testing.T) {
	tb, err := ComputeTrialBalance(fixture(), fy2025)
	require.NoError(t, err)

	assert.True(t, tb.IsBalanced)
	assert.Equal(t, fy2025, tb.Period)
	assert.True(t, tb.GeneratedAt.IsZero())
	assert.True(t, tb.TotalDebit.Equal(dec("3550")), "total debit %s", tb.TotalDebit)
	assert.True(t, tb.TotalCredit.Equal(dec("3550")))

	bank := row(t, tb, "512")
	assert.True(t, bank.TotalDebit.Equal(dec("1200")))
	assert.True(t, bank.TotalCredit.Equal(dec("250")))
	assert.True(t, bank.SoldeDebiteur.Equal(dec("950")))
	assert.True(t, bank.SoldeCrediteur.IsZero())

	sales := row(t, tb, "706")
	assert.True(t, sales.SoldeCrediteur.Equal(dec("1300")))
	assert.True(t, sales.SoldeDebiteur.IsZero())

	clients := row(t, tb, "411")
	assert.True(t, clients.Net().Equal(dec("300")))

	assert.True(t, tb.TotalSoldeDebiteur.Equal(tb.TotalSoldeCrediteur))
}

func TestComputeTrialBalance_FirstAppearanceOrder(t *testing.T) {
	tb, err := ComputeTrialBalance(fixture(), fy2025)
	require.NoError(t, err)

	var got []string
	for _, l := range tb.Lines {
		got = append(got, l.AccountNumber)
	}
	assert.Equal(t, []string{"512", "411", "706", "44571", "607", "44566", "401"}, got)
}

// Cancelled entries contribute no rows: 999 on 607/512 never shows up.
func TestComputeTrialBalance_SkipsCancelled(t *testing.T) {
	only := fixture()[3]
	require.Equal(t, model.StatusCancelled, only.Status)

	tb, err := ComputeTrialBalance([]model.Entry{only}, fy2025)
	require.NoError(t, err)
	assert.Empty(t, tb.Lines)
	assert.True(t, tb.IsBalanced)

	tb, err = ComputeTrialBalance(fixture(), fy2025)
	require.NoError(t, err)
	assert.True(t, row(t, tb, "607").TotalDebit.Equal(dec("500")))
}

func TestComputeTrialBalance_DraftsAndClosedCount(t *testing.T) {
	draft := entry("d1", 1, date(2025, 1, 1), debit("607", "10"), credit("401", "10"))
	draft.Status = model.StatusDraft
	closed := entry("c1", 2, date(2025, 1, 2), debit("607", "5"), credit("401", "5"))
	closed.Status = model.StatusClosed

	tb, err := ComputeTrialBalance([]model.Entry{draft, closed}, fy2025)
	require.NoError(t, err)
	assert.True(t, row(t, tb, "607").TotalDebit.Equal(dec("15")))
}

func TestComputeTrialBalance_Inconsistent(t *testing.T) {
	bad := entry("b1", 1, date(2025, 1, 1), debit("607", "100"), credit("401", "90"))

	tb, err := ComputeTrialBalance([]model.Entry{bad}, fy2025)
	require.Error(t, err)
	require.NotNil(t, tb, "report is returned alongside the error")
	assert.False(t, tb.IsBalanced)
	assert.ErrorIs(t, err, ErrInconsistent)

	var inc *InconsistencyError
	require.True(t, errors.As(err, &inc))
	assert.True(t, inc.TotalDebit.Equal(dec("100")))
	assert.True(t, inc.TotalCredit.Equal(dec("90")))
	assert.Contains(t, err.Error(), "debits 100.00 != credits 90.00")
}

func TestComputeTrialBalance_Empty(t *testing.T) {
	tb, err := ComputeTrialBalance(nil, fy2025)
	require.NoError(t, err)
	assert.True(t, tb.IsBalanced)
	assert.NotNil(t, tb.Lines)
	assert.Empty(t, tb.Lines)
}

func TestComputeTrialBalance_GeneratedAt(t *testing.T) {
	at := date(2026, 1, 15)
	tb, err := ComputeTrialBalance(fixture(), fy2025, WithGeneratedAt(at))
	require.NoError(t, err)
	assert.Equal(t, at, tb.GeneratedAt)
}

func TestComputeTrialBalance_Idempotent(t *testing.T) {
	entries := fixture()
	a, err := ComputeTrialBalance(entries, fy2025)
	require.NoError(t, err)
	b, err := ComputeTrialBalance(entries, fy2025)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// Every set of valid, non-cancelled entries yields a balanced trial balance.
func TestComputeTrialBalance_ValidEntriesBalance(t *testing.T) {
	entries := fixture()
	for n := 0; n <= len(entries); n++ {
		tb, err := ComputeTrialBalance(entries[:n], fy2025)
		require.NoError(t, err, "first %d entries", n)
		assert.True(t, tb.IsBalanced)
	}
}

func TestComputeTrialBalance_LabelFromLines(t *testing.T) {
	e := entry("e1", 1, date(2025, 1, 1), debit("512", "10"), credit("706", "10"))
	e.Lines[0].AccountLabel = "Banque"
	tb, err := ComputeTrialBalance([]model.Entry{e}, fy2025)
	require.NoError(t, err)
	assert.Equal(t, "Banque", row(t, tb, "512").AccountLabel)
	assert.Empty(t, row(t, tb, "706").AccountLabel)
}
