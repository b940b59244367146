package period

import (
	"errors"
	"fmt"
	"time"

	"github.com/cleared-dev/compta/internal/journal"
	"github.com/cleared-dev/compta/internal/ledger"
	"github.com/cleared-dev/compta/internal/model"
)

// ErrNotClosable is returned when a period cannot be closed: it is already
// closed, or some of its entries (or the generated closing entry) fail
// validation.
var ErrNotClosable = errors.New("period cannot be closed")

// Closing is the outcome of closing a period.
type Closing struct {
	Period    Fiscal        // the closed period, CLOTURE_DEFINITIVE
	Entries   []model.Entry // period entries including the closing entry, all CLOTURE; cancelled entries unchanged
	Cloture   ClotureResult
	Following Fiscal // the next period, OUVERT
	ANouveau  OpeningResult
}

// Close runs the year-end procedure on f: every non-cancelled entry is
// validated, the closing entry is computed from the trial balance and
// validated, every entry is marked closed, and the opening entry of the
// following period is computed from the post-closing trial balance.
//
// Drafts are validated as of closingDate. A single invalid entry aborts the
// closing and nothing is returned but the error. Closing.Cloture keeps the
// computed result even when no closing entry was needed.
func Close(f Fiscal, entries []model.Entry, closingDate time.Time, nextID string, opts ...Option) (*Closing, error) {
	if f.Status != StatusOpen && f.Status != StatusProvisional {
		return nil, fmt.Errorf("%w: period %s is %s", ErrNotClosable, f.ID, f.Status)
	}

	var live, cancelled []model.Entry
	for _, e := range entries {
		if e.Status.Reportable() {
			live = append(live, e)
		} else {
			cancelled = append(cancelled, e)
		}
	}

	validated, errs := journal.Accept(live, closingDate)
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotClosable, journal.Errors(errs))
	}

	tb, err := ledger.ComputeTrialBalance(live, f.Period())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotClosable, err)
	}

	// A period without income or expense has nothing to close.
	cloture := ComputeClotureExercice(tb, f.ID, closingDate, opts...)
	if len(cloture.Entry.Lines) > 0 {
		closingEntry, errs := journal.NewDraft(cloture.Entry).Validate(closingDate)
		if len(errs) > 0 {
			return nil, fmt.Errorf("%w: closing entry: %s", ErrNotClosable, journal.Errors(errs))
		}
		validated = append(validated, closingEntry)
	}

	closed := journal.CloseAll(validated)

	after, err := ledger.ComputeTrialBalance(closed, f.Period())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotClosable, err)
	}
	following := f.Following(nextID)
	opening := ComputeANouveau(after, nextID, following.Start, opts...)

	if f.Status == StatusOpen {
		if f, err = f.Next(); err != nil {
			return nil, err
		}
	}
	if f, err = f.Advance(StatusClosed); err != nil {
		return nil, err
	}

	return &Closing{
		Period:    f,
		Entries:   append(closed, cancelled...),
		Cloture:   cloture,
		Following: following,
		ANouveau:  opening,
	}, nil
}
