// Package releve turns bank statement exports into draft bank journal
// entries, one per statement line, against a suspense account.
package releve

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/compta/internal/id"
	"github.com/cleared-dev/compta/internal/model"
)

// Transaction is one line of a bank statement. A positive amount is money
// received by the business.
type Transaction struct {
	Date      time.Time
	Label     string
	Amount    decimal.Decimal
	Reference string
}

// Parser reads one statement format.
type Parser interface {
	Parse(r io.Reader) ([]Transaction, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats lists the registered format names.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		out = append(out, k)
	}
	return out
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&FrenchParser{})
	r.Register(&SignedParser{})
	return r
}

// Accounts used by generated entries.
type Accounts struct {
	Bank     string // e.g. 512
	Suspense string // e.g. 471, cleared later by reclassification
}

// DefaultAccounts books to 512 Banque and 471 Compte d'attente.
func DefaultAccounts() Accounts {
	return Accounts{Bank: "512", Suspense: "471"}
}

// ToEntries converts transactions to draft BQ entries numbered from
// firstSeq, in the period periodOf returns for their date. Zero amounts are
// skipped. IDs are derived from the reference so importing the same
// statement twice yields the same IDs.
func ToEntries(txns []Transaction, accts Accounts, periodOf func(time.Time) string, firstSeq int) []model.Entry {
	var out []model.Entry
	seq := firstSeq
	for _, t := range txns {
		if t.Amount.IsZero() {
			continue
		}
		entryID := id.Generated(id.KindBankImport, t.Reference)
		bank, suspense := model.Debit(t.Amount), model.Credit(t.Amount)
		if t.Amount.IsNegative() {
			bank, suspense = model.Credit(t.Amount.Neg()), model.Debit(t.Amount.Neg())
		}
		out = append(out, model.Entry{
			ID:       entryID,
			Journal:  model.JournalBank,
			Sequence: seq,
			Date:     t.Date,
			Label:    t.Label,
			PieceRef: t.Reference,
			Status:   model.StatusDraft,
			PeriodID: periodOf(t.Date),
			Lines: []model.Line{
				{ID: id.FormatLineID(entryID, 0), EntryID: entryID, AccountNumber: accts.Bank, Label: t.Label, Movement: bank},
				{ID: id.FormatLineID(entryID, 1), EntryID: entryID, AccountNumber: accts.Suspense, Label: t.Label, Movement: suspense},
			},
		})
		seq++
	}
	return out
}

// New returns the imported entries whose ID is not already in existing.
func New(existing, imported []model.Entry) []model.Entry {
	seen := make(map[string]bool, len(existing))
	for _, e := range existing {
		seen[e.ID] = true
	}
	var out []model.Entry
	for _, e := range imported {
		if !seen[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

// refs numbers transactions sharing a date, label and amount in file
// order, so the same bank line gets the same reference in every statement
// that contains it.
type refs map[string]int

// next returns a reference like bq_20250103_PRLVURSSAF_-1250.00_1.
func (r refs) next(prefix string, date time.Time, label string, amount decimal.Decimal) string {
	clean := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, label)
	if len(clean) > 10 {
		clean = clean[:10]
	}
	base := fmt.Sprintf("%s_%s_%s_%s", prefix, date.Format("20060102"), clean, amount.StringFixed(2))
	r[base]++
	return fmt.Sprintf("%s_%d", base, r[base])
}
