// Package audit keeps the audit trail of operations that changed the books:
// validation, lettrage, closing and imports. One CSV row per event.
package audit

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileName is the audit trail file, kept next to the journal.
const FileName = "compta-audit.csv"

// Actions recorded by the commands.
const (
	ActionInit     = "init"
	ActionValidate = "validate"
	ActionLettrage = "lettrage"
	ActionCloture  = "cloture"
	ActionANouveau = "a-nouveau"
	ActionImport   = "import"
)

// Event is one row of the audit trail.
type Event struct {
	Timestamp time.Time
	Action    string
	PeriodID  string
	EntryID   string
	Details   string
	Commit    string
}

// Header is the CSV header of the audit trail.
const Header = "timestamp,action,period_id,entry_id,details,commit"

const (
	numFields    = 6
	colTimestamp = 0
	colAction    = 1
	colPeriodID  = 2
	colEntryID   = 3
	colDetails   = 4
	colCommit    = 5
)

// Path returns the audit trail path for a journal file.
func Path(journalPath string) string {
	return filepath.Join(filepath.Dir(journalPath), FileName)
}

// MarshalEvent converts an Event to a CSV row.
func MarshalEvent(e Event) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colAction] = e.Action
	row[colPeriodID] = e.PeriodID
	row[colEntryID] = e.EntryID
	row[colDetails] = e.Details
	row[colCommit] = e.Commit
	return row
}

// UnmarshalEvent converts a CSV row to an Event.
func UnmarshalEvent(record []string) (Event, error) {
	if len(record) != numFields {
		return Event{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Event{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	return Event{
		Timestamp: ts,
		Action:    record[colAction],
		PeriodID:  record[colPeriodID],
		EntryID:   record[colEntryID],
		Details:   record[colDetails],
		Commit:    record[colCommit],
	}, nil
}

// Append writes events to path, creating the file and header if needed.
// Existing rows are never rewritten.
func Append(path string, events []Event) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating audit dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit trail: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range events {
		if err := cw.Write(MarshalEvent(e)); err != nil {
			return fmt.Errorf("writing event %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all events of the trail at path, or none if it does not exist.
func Read(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit trail: %w", err)
	}
	defer f.Close()

	return readEvents(f)
}

func readEvents(r io.Reader) ([]Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var events []Event
	for i, rec := range records[1:] {
		e, err := UnmarshalEvent(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		events = append(events, e)
	}
	return events, nil
}
