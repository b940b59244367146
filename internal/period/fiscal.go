// Package period implements the fiscal period lifecycle: the period state
// machine, year-end closing (clôture) and the opening entry of the following
// period (à-nouveau).
package period

import (
	"errors"
	"fmt"
	"time"

	"github.com/cleared-dev/compta/internal/model"
)

// Status is the lifecycle state of a fiscal period.
type Status string

const (
	StatusOpen        Status = "OUVERT"
	StatusProvisional Status = "CLOTURE_PROVISOIRE"
	StatusClosed      Status = "CLOTURE_DEFINITIVE"
	StatusArchived    Status = "ARCHIVE"
)

// ErrIllegalTransition is returned when a period skips or reverts a state.
var ErrIllegalTransition = errors.New("illegal period transition")

var successor = map[Status]Status{
	StatusOpen:        StatusProvisional,
	StatusProvisional: StatusClosed,
	StatusClosed:      StatusArchived,
}

// Fiscal is an exercice comptable.
type Fiscal struct {
	ID     string
	Start  time.Time
	End    time.Time
	Status Status
}

// New returns an open period.
func New(periodID string, start, end time.Time) Fiscal {
	return Fiscal{ID: periodID, Start: start, End: end, Status: StatusOpen}
}

// Year returns the open twelve-month period of the given year, starting on
// yearStart ("MM-DD", e.g. "01-01" or "07-01").
func Year(year int, yearStart string) (Fiscal, error) {
	md, err := time.Parse("01-02", yearStart)
	if err != nil {
		return Fiscal{}, fmt.Errorf("parsing year start %q: %w", yearStart, err)
	}
	start := time.Date(year, md.Month(), md.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, -1)
	periodID := fmt.Sprintf("%d", year)
	if start.Year() != end.Year() {
		periodID = fmt.Sprintf("%d-%d", year, end.Year())
	}
	return New(periodID, start, end), nil
}

// Period returns the report bounds of f.
func (f Fiscal) Period() model.Period {
	return model.Period{ID: f.ID, Start: f.Start, End: f.End}
}

// Contains reports whether t falls within the period, bounds included.
func (f Fiscal) Contains(t time.Time) bool {
	return !t.Before(f.Start) && !t.After(f.End)
}

// Following returns the open period that starts the day after f ends and
// lasts as long as a year.
func (f Fiscal) Following(periodID string) Fiscal {
	start := f.End.AddDate(0, 0, 1)
	return New(periodID, start, start.AddDate(1, 0, -1))
}

// Next advances f by one state.
func (f Fiscal) Next() (Fiscal, error) {
	to, ok := successor[f.Status]
	if !ok {
		return f, fmt.Errorf("%w: %s has no successor", ErrIllegalTransition, f.Status)
	}
	f.Status = to
	return f, nil
}

// Advance moves f to the state to, which must directly follow its current
// state.
func (f Fiscal) Advance(to Status) (Fiscal, error) {
	if successor[f.Status] != to || to == "" {
		return f, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, f.Status, to)
	}
	f.Status = to
	return f, nil
}

// AcceptsEntries reports whether new entries may be posted to the period.
func (f Fiscal) AcceptsEntries() bool {
	return f.Status == StatusOpen
}
