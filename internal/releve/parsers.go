package releve

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FrenchParser reads the semicolon separated export most French banks
// offer: date;libellé;débit;crédit with dd/mm/yyyy dates and comma decimals.
type FrenchParser struct{}

const (
	frDateFormat = "02/01/2006"
	frNumFields  = 4
)

// Format returns the parser name.
func (p *FrenchParser) Format() string { return "fr" }

// Parse reads a statement and returns its transactions in file order.
func (p *FrenchParser) Parse(r io.Reader) ([]Transaction, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = frNumFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var txns []Transaction
	seen := refs{}
	for i, rec := range records[1:] {
		date, err := time.Parse(frDateFormat, strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+2, rec[0], err)
		}
		debit, err := frenchAmount(rec[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing débit: %w", i+2, err)
		}
		credit, err := frenchAmount(rec[3])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing crédit: %w", i+2, err)
		}
		label := strings.TrimSpace(rec[1])
		amount := credit.Sub(debit.Abs())
		txns = append(txns, Transaction{
			Date:      date,
			Label:     label,
			Amount:    amount,
			Reference: seen.next("bq", date, label, amount),
		})
	}
	return txns, nil
}

// frenchAmount parses "1 234,56" style amounts. Blank is zero.
func frenchAmount(s string) (decimal.Decimal, error) {
	s = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.Replace(s, ",", ".", 1))
}

// SignedParser reads a comma separated date,label,amount export with ISO
// dates and a signed amount.
type SignedParser struct{}

// Format returns the parser name.
func (p *SignedParser) Format() string { return "signed" }

// Parse reads a statement and returns its transactions in file order.
func (p *SignedParser) Parse(r io.Reader) ([]Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var txns []Transaction
	seen := refs{}
	for i, rec := range records[1:] {
		date, err := time.Parse("2006-01-02", rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+2, rec[0], err)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(rec[2]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing amount %q: %w", i+2, rec[2], err)
		}
		txns = append(txns, Transaction{
			Date:      date,
			Label:     rec[1],
			Amount:    amount,
			Reference: seen.next("bq", date, rec[1], amount),
		})
	}
	return txns, nil
}
