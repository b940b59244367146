package lettrage

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/compta/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(lineID, account string, mv model.Movement) model.Line {
	return model.Line{ID: lineID, AccountNumber: account, AuxAccount: "C001", Movement: mv}
}

func invoiceAndPayment(paid string) []model.Line {
	return []model.Line{
		line("e1a", "411", model.Debit(dec("10000"))),
		line("e2b", "411", model.Credit(dec(paid))),
	}
}

func TestCompute_FullMatch(t *testing.T) {
	res := Compute(invoiceAndPayment("10000"), "A")
	assert.True(t, res.Success)
	assert.Equal(t, "A", res.Code)
	assert.Equal(t, ReasonNone, res.Reason)
	assert.True(t, res.Solde.IsZero())
	assert.True(t, res.TotalDebit.Equal(dec("10000")))
}

func TestCompute_PartialMatch(t *testing.T) {
	res := Compute(invoiceAndPayment("5000"), "A")
	assert.False(t, res.Success)
	assert.Empty(t, res.Code)
	assert.Equal(t, ReasonResidual, res.Reason)
	assert.True(t, res.Solde.Equal(dec("5000")))
}

func TestCompute_Overpaid(t *testing.T) {
	res := Compute(invoiceAndPayment("10000.01"), "A")
	assert.False(t, res.Success)
	assert.True(t, res.Solde.Equal(dec("-0.01")))
}

func TestCompute_Failures(t *testing.T) {
	mixed := invoiceAndPayment("10000")
	mixed[1].AccountNumber = "401"

	otherClient := invoiceAndPayment("10000")
	otherClient[1].AuxAccount = "C002"

	tests := []struct {
		name  string
		lines []model.Line
		code  string
		want  Reason
	}{
		{"empty", nil, "A", ReasonEmpty},
		{"blank code", invoiceAndPayment("10000"), "  ", ReasonBlankCode},
		{"mixed accounts", mixed, "A", ReasonMixedAccounts},
		{"mixed aux accounts", otherClient, "A", ReasonMixedAccounts},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Compute(tt.lines, tt.code)
			assert.False(t, res.Success)
			assert.Equal(t, tt.want, res.Reason)
		})
	}
}

func TestCompute_ManyToMany(t *testing.T) {
	lines := []model.Line{
		line("a", "411", model.Debit(dec("120.00"))),
		line("b", "411", model.Debit(dec("80.50"))),
		line("c", "411", model.Credit(dec("100.25"))),
		line("d", "411", model.Credit(dec("100.25"))),
	}
	assert.True(t, Compute(lines, "B").Success)
}

func TestApply(t *testing.T) {
	lines := invoiceAndPayment("10000")
	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	out, res := Apply(lines, "A", at)
	require.True(t, res.Success)
	require.Len(t, out, 2)
	for _, l := range out {
		assert.Equal(t, "A", l.LettrageCode)
		require.NotNil(t, l.LettrageDate)
		assert.True(t, l.LettrageDate.Equal(at))
	}
	assert.Empty(t, lines[0].LettrageCode, "input is not modified")

	out, res = Apply(invoiceAndPayment("5000"), "A", at)
	assert.Nil(t, out)
	assert.Equal(t, ReasonResidual, res.Reason)
}

func TestRemove(t *testing.T) {
	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	lettered, res := Apply(invoiceAndPayment("10000"), "A", at)
	require.True(t, res.Success)
	other := line("e3a", "411", model.Debit(dec("1")))
	other.LettrageCode = "B"

	out := Remove(append(lettered, other), "A")
	assert.Empty(t, out[0].LettrageCode)
	assert.Nil(t, out[0].LettrageDate)
	assert.Empty(t, out[1].LettrageCode)
	assert.Equal(t, "B", out[2].LettrageCode)
	assert.Equal(t, "A", lettered[0].LettrageCode)
}

func TestUnlettered(t *testing.T) {
	lines := invoiceAndPayment("10000")
	lines[0].LettrageCode = "A"
	lines = append(lines, line("e9a", "401", model.Credit(dec("3"))))

	open := Unlettered(lines, "411")
	require.Len(t, open, 1)
	assert.Equal(t, "e2b", open[0].ID)
	assert.Empty(t, Unlettered(lines, "512"))
}

func TestGroups(t *testing.T) {
	lines := []model.Line{
		line("a", "411", model.Debit(dec("100"))),
		line("b", "401", model.Credit(dec("40"))),
		line("c", "411", model.Credit(dec("100"))),
		line("d", "401", model.Debit(dec("30"))),
		line("e", "411", model.Debit(dec("7"))),
	}
	lines[0].LettrageCode = "A"
	lines[1].LettrageCode = "A"
	lines[2].LettrageCode = "A"
	lines[3].LettrageCode = "A"

	groups := Groups(lines)
	require.Len(t, groups, 2)

	assert.Equal(t, "411", groups[0].AccountNumber)
	assert.Equal(t, []string{"a", "c"}, groups[0].LineIDs)
	assert.True(t, groups[0].Valid)

	assert.Equal(t, "401", groups[1].AccountNumber)
	assert.Equal(t, []string{"b", "d"}, groups[1].LineIDs)
	assert.False(t, groups[1].Valid)
	assert.True(t, groups[1].TotalDebit.Equal(dec("30")))
	assert.True(t, groups[1].TotalCredit.Equal(dec("40")))
}
