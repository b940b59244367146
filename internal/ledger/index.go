package ledger

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/compta/internal/model"
)

// Index answers account and prefix queries over a trial balance in
// O(log n). Rows are sorted by account number; every account sharing a
// prefix is then a contiguous range, summed as a difference of cumulative
// sums.
//
// An Index is immutable and safe for concurrent use.
type Index struct {
	accounts []string
	// cumulative sums: element i covers rows [0, i)
	net       []decimal.Decimal
	debiteur  []decimal.Decimal
	crediteur []decimal.Decimal
}

// NewIndex builds an index over tb's rows. A nil trial balance yields an
// empty index.
func NewIndex(tb *model.TrialBalance) *Index {
	var rows []model.TrialBalanceLine
	if tb != nil {
		rows = make([]model.TrialBalanceLine, len(tb.Lines))
		copy(rows, tb.Lines)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AccountNumber < rows[j].AccountNumber
	})

	n := len(rows)
	idx := &Index{
		accounts:  make([]string, n),
		net:       make([]decimal.Decimal, n+1),
		debiteur:  make([]decimal.Decimal, n+1),
		crediteur: make([]decimal.Decimal, n+1),
	}
	idx.net[0], idx.debiteur[0], idx.crediteur[0] = decimal.Zero, decimal.Zero, decimal.Zero
	for i, r := range rows {
		idx.accounts[i] = r.AccountNumber
		idx.net[i+1] = idx.net[i].Add(r.Net())
		idx.debiteur[i+1] = idx.debiteur[i].Add(r.SoldeDebiteur)
		idx.crediteur[i+1] = idx.crediteur[i].Add(r.SoldeCrediteur)
	}
	return idx
}

// Len returns the number of indexed rows.
func (x *Index) Len() int { return len(x.accounts) }

// prefixRange returns [lo, hi) of rows whose account starts with prefix.
func (x *Index) prefixRange(prefix string) (int, int) {
	n := len(x.accounts)
	lo := sort.SearchStrings(x.accounts, prefix)
	hi := lo + sort.Search(n-lo, func(i int) bool {
		return !strings.HasPrefix(x.accounts[lo+i], prefix)
	})
	return lo, hi
}

// exactRange returns [lo, hi) of rows for exactly account.
func (x *Index) exactRange(account string) (int, int) {
	lo := sort.SearchStrings(x.accounts, account)
	hi := lo + sort.Search(len(x.accounts)-lo, func(i int) bool {
		return x.accounts[lo+i] != account
	})
	return lo, hi
}

func between(sums []decimal.Decimal, lo, hi int) decimal.Decimal {
	return sums[hi].Sub(sums[lo])
}

// AccountBalance returns debit minus credit of the account's row, zero when
// the account is absent.
func (x *Index) AccountBalance(account string) decimal.Decimal {
	lo, hi := x.exactRange(account)
	return between(x.net, lo, hi)
}

// PrefixBalance returns the sum of debit minus credit over every row whose
// account starts with prefix. The empty prefix matches every row.
func (x *Index) PrefixBalance(prefix string) decimal.Decimal {
	lo, hi := x.prefixRange(prefix)
	return between(x.net, lo, hi)
}

// DebitBalance sums SoldeDebiteur over the rows matching prefix.
func (x *Index) DebitBalance(prefix string) decimal.Decimal {
	lo, hi := x.prefixRange(prefix)
	return between(x.debiteur, lo, hi)
}

// CreditBalance sums SoldeCrediteur over the rows matching prefix.
func (x *Index) CreditBalance(prefix string) decimal.Decimal {
	lo, hi := x.prefixRange(prefix)
	return between(x.crediteur, lo, hi)
}

// GetAccountBalance returns debit minus credit of one account in tb.
// Callers issuing many queries should hold an Index instead.
func GetAccountBalance(tb *model.TrialBalance, account string) decimal.Decimal {
	return NewIndex(tb).AccountBalance(account)
}

// GetAccountPrefixBalance returns the net balance of all accounts starting
// with prefix.
func GetAccountPrefixBalance(tb *model.TrialBalance, prefix string) decimal.Decimal {
	return NewIndex(tb).PrefixBalance(prefix)
}

// GetDebitBalance sums the debit soldes of all accounts starting with prefix.
func GetDebitBalance(tb *model.TrialBalance, prefix string) decimal.Decimal {
	return NewIndex(tb).DebitBalance(prefix)
}

// GetCreditBalance sums the credit soldes of all accounts starting with prefix.
func GetCreditBalance(tb *model.TrialBalance, prefix string) decimal.Decimal {
	return NewIndex(tb).CreditBalance(prefix)
}
