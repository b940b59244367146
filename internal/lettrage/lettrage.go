// Package lettrage reconciles journal lines of one account under a shared
// code (lettrage). The caller chooses the lines; nothing is matched
// automatically.
package lettrage

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/compta/internal/model"
)

// Reason explains why a set of lines cannot be lettered.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonEmpty         Reason = "EMPTY"
	ReasonBlankCode     Reason = "BLANK_CODE"
	ReasonMixedAccounts Reason = "MIXED_ACCOUNTS"
	ReasonResidual      Reason = "RESIDUAL"
)

// Result is the outcome of a lettrage attempt.
type Result struct {
	Success     bool
	Code        string // set on success only
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Solde       decimal.Decimal // debit minus credit, non-zero for a partial match
	Reason      Reason
}

// Compute checks whether lines can be lettered together under code: the set
// is non-empty, the code is not blank, every line is on the same account
// (and auxiliary account) and debits equal credits exactly.
func Compute(lines []model.Line, code string) Result {
	res := Result{TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, l := range lines {
		res.TotalDebit = res.TotalDebit.Add(l.Debit())
		res.TotalCredit = res.TotalCredit.Add(l.Credit())
	}
	res.Solde = res.TotalDebit.Sub(res.TotalCredit)

	switch {
	case len(lines) == 0:
		res.Reason = ReasonEmpty
	case strings.TrimSpace(code) == "":
		res.Reason = ReasonBlankCode
	case !sameAccount(lines):
		res.Reason = ReasonMixedAccounts
	case !res.Solde.IsZero():
		res.Reason = ReasonResidual
	default:
		res.Success = true
		res.Code = code
	}
	return res
}

func sameAccount(lines []model.Line) bool {
	first := lines[0]
	for _, l := range lines[1:] {
		if l.AccountNumber != first.AccountNumber || l.AuxAccount != first.AuxAccount {
			return false
		}
	}
	return true
}

// Apply letters copies of lines with code and date at when Compute succeeds.
// On failure it returns nil and the failed Result; lines are never modified.
func Apply(lines []model.Line, code string, at time.Time) ([]model.Line, Result) {
	res := Compute(lines, code)
	if !res.Success {
		return nil, res
	}
	out := make([]model.Line, len(lines))
	for i, l := range lines {
		c := l.Clone()
		c.LettrageCode = code
		d := at
		c.LettrageDate = &d
		out[i] = c
	}
	return out, res
}

// Remove returns copies of lines with the given code cleared (délettrage).
// Lines under other codes are copied unchanged.
func Remove(lines []model.Line, code string) []model.Line {
	out := make([]model.Line, len(lines))
	for i, l := range lines {
		c := l.Clone()
		if c.LettrageCode == code {
			c.LettrageCode = ""
			c.LettrageDate = nil
		}
		out[i] = c
	}
	return out
}

// Unlettered returns copies of the open lines of an account.
func Unlettered(lines []model.Line, account string) []model.Line {
	var out []model.Line
	for _, l := range lines {
		if l.AccountNumber == account && l.LettrageCode == "" {
			out = append(out, l.Clone())
		}
	}
	return out
}

// Groups collects lettered lines by account and code, in order of first
// appearance. A group is valid when it would pass Compute.
func Groups(lines []model.Line) []model.LettrageGroup {
	type key struct{ account, code string }
	index := make(map[key]int)
	var members [][]model.Line
	var groups []model.LettrageGroup

	for _, l := range lines {
		if l.LettrageCode == "" {
			continue
		}
		k := key{l.AccountNumber, l.LettrageCode}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, model.LettrageGroup{AccountNumber: l.AccountNumber, Code: l.LettrageCode})
			members = append(members, nil)
		}
		groups[i].LineIDs = append(groups[i].LineIDs, l.ID)
		members[i] = append(members[i], l)
	}

	for i := range groups {
		res := Compute(members[i], groups[i].Code)
		groups[i].TotalDebit = res.TotalDebit
		groups[i].TotalCredit = res.TotalCredit
		groups[i].Valid = res.Success
	}
	return groups
}
