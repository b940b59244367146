package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalCode classifies the origin of an entry.
type JournalCode string

const (
	JournalPurchases   JournalCode = "AC"
	JournalSales       JournalCode = "VE"
	JournalBank        JournalCode = "BQ"
	JournalMisc        JournalCode = "OD"
	JournalOpening     JournalCode = "AN"
	JournalPayroll     JournalCode = "PA"
	JournalExceptional JournalCode = "EX"
)

// Valid reports whether c is a known journal code.
func (c JournalCode) Valid() bool {
	switch c {
	case JournalPurchases, JournalSales, JournalBank, JournalMisc,
		JournalOpening, JournalPayroll, JournalExceptional:
		return true
	}
	return false
}

// EntryStatus represents the lifecycle state of a journal entry.
type EntryStatus string

const (
	StatusDraft     EntryStatus = "BROUILLARD"
	StatusValidated EntryStatus = "VALIDE"
	StatusClosed    EntryStatus = "CLOTURE"
	StatusCancelled EntryStatus = "ANNULE"
)

// Reportable reports whether entries in this status feed the reports.
// Cancelled entries are kept for audit but never reported.
func (s EntryStatus) Reportable() bool {
	return s != StatusCancelled
}

// Entry is one accounting transaction (écriture).
type Entry struct {
	ID             string
	Journal        JournalCode
	Sequence       int
	Date           time.Time
	ValidationDate *time.Time
	Label          string
	PieceRef       string
	PieceDate      *time.Time
	Status         EntryStatus
	PeriodID       string
	Lines          []Line
}

// TotalDebit sums the debit side of all lines.
func (e Entry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Movement.DebitAmount())
	}
	return total
}

// TotalCredit sums the credit side of all lines.
func (e Entry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Movement.CreditAmount())
	}
	return total
}

// IsBalanced reports whether debits equal credits.
func (e Entry) IsBalanced() bool {
	return e.TotalDebit().Equal(e.TotalCredit())
}

// Clone returns a deep copy of the entry so callers can derive new entries
// without touching the original.
func (e Entry) Clone() Entry {
	out := e
	out.ValidationDate = cloneTime(e.ValidationDate)
	out.PieceDate = cloneTime(e.PieceDate)
	if e.Lines != nil {
		out.Lines = make([]Line, len(e.Lines))
		for i, l := range e.Lines {
			out.Lines[i] = l.Clone()
		}
	}
	return out
}

// Line is one leg of an entry.
type Line struct {
	ID            string
	EntryID       string
	AccountNumber string
	AccountLabel  string
	AuxAccount    string // client/supplier account, empty when none
	AuxLabel      string
	Label         string
	Movement      Movement
	LettrageCode  string
	LettrageDate  *time.Time
	DueDate       *time.Time
}

// HasAux reports whether the line is tracked on a subsidiary account.
func (l Line) HasAux() bool { return l.AuxAccount != "" }

// Debit returns the debit amount (zero for a credit line).
func (l Line) Debit() decimal.Decimal { return l.Movement.DebitAmount() }

// Credit returns the credit amount (zero for a debit line).
func (l Line) Credit() decimal.Decimal { return l.Movement.CreditAmount() }

// Clone returns a copy of the line with its own date pointers.
func (l Line) Clone() Line {
	out := l
	out.LettrageDate = cloneTime(l.LettrageDate)
	out.DueDate = cloneTime(l.DueDate)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
