package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period bounds a report.
type Period struct {
	ID    string
	Start time.Time
	End   time.Time
}

// TrialBalanceLine is one account row of a trial balance.
type TrialBalanceLine struct {
	AccountNumber  string
	AccountLabel   string
	TotalDebit     decimal.Decimal
	TotalCredit    decimal.Decimal
	SoldeDebiteur  decimal.Decimal
	SoldeCrediteur decimal.Decimal
}

// Net returns debit minus credit.
func (l TrialBalanceLine) Net() decimal.Decimal {
	return l.TotalDebit.Sub(l.TotalCredit)
}

// TrialBalance is the per-account aggregation of a period (balance générale).
type TrialBalance struct {
	Period              Period
	GeneratedAt         time.Time
	Lines               []TrialBalanceLine
	TotalDebit          decimal.Decimal
	TotalCredit         decimal.Decimal
	TotalSoldeDebiteur  decimal.Decimal
	TotalSoldeCrediteur decimal.Decimal
	IsBalanced          bool
}

// LedgerLine is one posting in a ledger listing, annotated with the running
// balance of its account after the posting.
type LedgerLine struct {
	EntryID        string
	LineID         string
	Journal        JournalCode
	Sequence       int
	Date           time.Time
	PieceRef       string
	Label          string
	AccountNumber  string
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	RunningBalance decimal.Decimal // solde progressif
	LettrageCode   string
}

// LedgerAccount is the chronological history of one account.
type LedgerAccount struct {
	AccountNumber  string
	AccountLabel   string
	OpeningBalance decimal.Decimal
	Lines          []LedgerLine
	TotalDebit     decimal.Decimal
	TotalCredit    decimal.Decimal
	ClosingBalance decimal.Decimal
}

// GeneralLedger is the grand livre of a period.
type GeneralLedger struct {
	Period      Period
	GeneratedAt time.Time
	Accounts    []LedgerAccount
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// SubsidiaryKind selects which third-party accounts a subsidiary ledger covers.
type SubsidiaryKind string

const (
	SubsidiaryClients   SubsidiaryKind = "CLIENTS"
	SubsidiarySuppliers SubsidiaryKind = "FOURNISSEURS"
)

// SubsidiaryAccount is the history of one auxiliary (client or supplier) account.
type SubsidiaryAccount struct {
	AuxAccount     string
	AuxLabel       string
	OpeningBalance decimal.Decimal
	Lines          []LedgerLine
	TotalDebit     decimal.Decimal
	TotalCredit    decimal.Decimal
	Solde          decimal.Decimal
	SoldeDebiteur  decimal.Decimal
	SoldeCrediteur decimal.Decimal
}

// SubsidiaryLedger is the balance auxiliaire for clients or suppliers.
type SubsidiaryLedger struct {
	Kind        SubsidiaryKind
	Period      Period
	GeneratedAt time.Time
	Accounts    []SubsidiaryAccount
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// LettrageGroup is a set of lines sharing a reconciliation code on one account.
type LettrageGroup struct {
	AccountNumber string
	Code          string
	LineIDs       []string
	TotalDebit    decimal.Decimal
	TotalCredit   decimal.Decimal
	Valid         bool
}
