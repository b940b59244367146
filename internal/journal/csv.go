package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/compta/internal/model"
)

// Header is the CSV header for journal files. One row per line; entry fields
// repeat on every line of the entry.
const Header = "entry_id,journal,sequence,date,validation_date,label,piece_ref,piece_date,status,period_id," +
	"line_id,account,account_label,aux_account,aux_label,line_label,debit,credit,lettrage,lettrage_date,due_date"

const (
	numFields      = 21
	dateFormat     = "2006-01-02"
	colEntryID     = 0
	colJournal     = 1
	colSequence    = 2
	colDate        = 3
	colValidated   = 4
	colLabel       = 5
	colPieceRef    = 6
	colPieceDate   = 7
	colStatus      = 8
	colPeriodID    = 9
	colLineID      = 10
	colAccount     = 11
	colAcctLabel   = 12
	colAux         = 13
	colAuxLabel    = 14
	colLineLabel   = 15
	colDebit       = 16
	colCredit      = 17
	colLettrage    = 18
	colLettrageDay = 19
	colDueDate     = 20
)

// ReadEntries reads a journal CSV and groups its rows into entries, in order of
// first appearance. Entry-level fields are taken from the entry's first row.
func ReadEntries(r io.Reader) ([]model.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var entries []model.Entry
	index := make(map[string]int)
	// Skip header row.
	for i, rec := range records[1:] {
		entry, line, err := UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		pos, seen := index[entry.ID]
		if !seen {
			pos = len(entries)
			index[entry.ID] = pos
			entries = append(entries, entry)
		}
		entries[pos].Lines = append(entries[pos].Lines, line)
	}
	return entries, nil
}

// WriteEntries writes entries to a journal CSV writer (including header).
func WriteEntries(w io.Writer, entries []model.Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := 2
	for _, e := range entries {
		for _, l := range e.Lines {
			if err := cw.Write(MarshalRow(e, l)); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
			row++
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRow converts one line of an entry to a CSV row.
func MarshalRow(e model.Entry, l model.Line) []string {
	row := make([]string, numFields)
	row[colEntryID] = e.ID
	row[colJournal] = string(e.Journal)
	row[colSequence] = strconv.Itoa(e.Sequence)
	row[colDate] = e.Date.Format(dateFormat)
	row[colValidated] = formatOptionalDate(e.ValidationDate)
	row[colLabel] = e.Label
	row[colPieceRef] = e.PieceRef
	row[colPieceDate] = formatOptionalDate(e.PieceDate)
	row[colStatus] = string(e.Status)
	row[colPeriodID] = e.PeriodID

	row[colLineID] = l.ID
	row[colAccount] = l.AccountNumber
	row[colAcctLabel] = l.AccountLabel
	row[colAux] = l.AuxAccount
	row[colAuxLabel] = l.AuxLabel
	row[colLineLabel] = l.Label

	if debit := l.Debit(); !debit.IsZero() {
		row[colDebit] = debit.StringFixed(2)
	}
	if credit := l.Credit(); !credit.IsZero() {
		row[colCredit] = credit.StringFixed(2)
	}

	row[colLettrage] = l.LettrageCode
	row[colLettrageDay] = formatOptionalDate(l.LettrageDate)
	row[colDueDate] = formatOptionalDate(l.DueDate)
	return row
}

// UnmarshalRow converts a CSV row to its entry header and line.
// The returned entry has no lines.
func UnmarshalRow(record []string) (model.Entry, model.Line, error) {
	if len(record) != numFields {
		return model.Entry{}, model.Line{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	entryID := strings.TrimSpace(record[colEntryID])
	if entryID == "" {
		return model.Entry{}, model.Line{}, fmt.Errorf("missing entry_id")
	}

	var seq int
	if record[colSequence] != "" {
		var err error
		seq, err = strconv.Atoi(record[colSequence])
		if err != nil {
			return model.Entry{}, model.Line{}, fmt.Errorf("parsing sequence %q: %w", record[colSequence], err)
		}
	}

	day, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Entry{}, model.Line{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	validated, err := parseOptionalDate("validation_date", record[colValidated])
	if err != nil {
		return model.Entry{}, model.Line{}, err
	}
	pieceDate, err := parseOptionalDate("piece_date", record[colPieceDate])
	if err != nil {
		return model.Entry{}, model.Line{}, err
	}
	lettrageDate, err := parseOptionalDate("lettrage_date", record[colLettrageDay])
	if err != nil {
		return model.Entry{}, model.Line{}, err
	}
	dueDate, err := parseOptionalDate("due_date", record[colDueDate])
	if err != nil {
		return model.Entry{}, model.Line{}, err
	}

	debit, err := parseAmount("debit", record[colDebit])
	if err != nil {
		return model.Entry{}, model.Line{}, err
	}
	credit, err := parseAmount("credit", record[colCredit])
	if err != nil {
		return model.Entry{}, model.Line{}, err
	}
	mv, err := model.MovementFromColumns(debit, credit)
	if err != nil {
		return model.Entry{}, model.Line{}, err
	}

	status := model.EntryStatus(record[colStatus])
	if status == "" {
		status = model.StatusDraft
	}

	entry := model.Entry{
		ID:             entryID,
		Journal:        model.JournalCode(record[colJournal]),
		Sequence:       seq,
		Date:           day,
		ValidationDate: validated,
		Label:          record[colLabel],
		PieceRef:       record[colPieceRef],
		PieceDate:      pieceDate,
		Status:         status,
		PeriodID:       record[colPeriodID],
	}
	line := model.Line{
		ID:            record[colLineID],
		EntryID:       entryID,
		AccountNumber: record[colAccount],
		AccountLabel:  record[colAcctLabel],
		AuxAccount:    record[colAux],
		AuxLabel:      record[colAuxLabel],
		Label:         record[colLineLabel],
		Movement:      mv,
		LettrageCode:  record[colLettrage],
		LettrageDate:  lettrageDate,
		DueDate:       dueDate,
	}
	return entry, line, nil
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s %q: %w", field, s, err)
	}
	return d, nil
}

func parseOptionalDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return nil, fmt.Errorf("parsing %s %q: %w", field, s, err)
	}
	return &t, nil
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateFormat)
}
