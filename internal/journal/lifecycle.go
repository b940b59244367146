package journal

import (
	"time"

	"github.com/cleared-dev/compta/internal/model"
)

// Draft is an entry that has not passed validation yet.
type Draft struct {
	entry model.Entry
}

// NewDraft wraps a copy of entry as a draft (BROUILLARD).
func NewDraft(entry model.Entry) Draft {
	e := entry.Clone()
	e.Status = model.StatusDraft
	e.ValidationDate = nil
	return Draft{entry: e}
}

// Entry returns a copy of the draft entry.
func (d Draft) Entry() model.Entry { return d.entry.Clone() }

// Validate is the only way to obtain a Validated entry. On failure the
// returned Validated is the zero value and every violation is reported.
func (d Draft) Validate(at time.Time) (Validated, []ValidationError) {
	if errs := Validate(d.entry); len(errs) > 0 {
		return Validated{}, errs
	}
	e := d.entry.Clone()
	e.Status = model.StatusValidated
	e.ValidationDate = &at
	return Validated{entry: e}, nil
}

// Cancel returns the draft as a cancelled entry. Lines are kept for audit.
func (d Draft) Cancel() model.Entry {
	return cancelled(d.entry)
}

// Validated is an entry that passed Validate. It can only be produced by
// Draft.Validate, so holding one proves the entry balances.
type Validated struct {
	entry model.Entry
}

// Entry returns a copy of the validated entry.
func (v Validated) Entry() model.Entry { return v.entry.Clone() }

// IsZero reports whether v was not produced by a successful validation.
func (v Validated) IsZero() bool { return v.entry.Status != model.StatusValidated }

// Cancel returns the validated entry as a cancelled entry.
func (v Validated) Cancel() model.Entry {
	return cancelled(v.entry)
}

// CloseAll marks validated entries as closed. Only period closing calls this.
func CloseAll(entries []Validated) []model.Entry {
	out := make([]model.Entry, 0, len(entries))
	for _, v := range entries {
		if v.IsZero() {
			continue
		}
		e := v.entry.Clone()
		e.Status = model.StatusClosed
		out = append(out, e)
	}
	return out
}

// Accept validates raw entries in bulk. Entries that pass are returned as
// Validated; the rest contribute their violations. An entry that already
// carries a validation date keeps it, the others are stamped with at.
func Accept(entries []model.Entry, at time.Time) ([]Validated, []ValidationError) {
	var ok []Validated
	var errs []ValidationError
	for _, e := range entries {
		stamp := at
		if e.ValidationDate != nil {
			stamp = *e.ValidationDate
		}
		v, verrs := NewDraft(e).Validate(stamp)
		if len(verrs) > 0 {
			errs = append(errs, verrs...)
			continue
		}
		ok = append(ok, v)
	}
	return ok, errs
}

func cancelled(e model.Entry) model.Entry {
	out := e.Clone()
	out.Status = model.StatusCancelled
	return out
}
