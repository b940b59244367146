package lettrage

import (
	"errors"
	"fmt"

	"github.com/cleared-dev/compta/internal/model"
)

// ErrUnknownLine is returned when a requested line is not found among the
// reportable entries.
var ErrUnknownLine = errors.New("unknown line")

// Lines returns copies of the lines of non-cancelled entries.
func Lines(entries []model.Entry) []model.Line {
	var out []model.Line
	for _, e := range entries {
		if !e.Status.Reportable() {
			continue
		}
		for _, l := range e.Lines {
			out = append(out, l.Clone())
		}
	}
	return out
}

// Pick returns copies of the lines with the given IDs, in the order
// requested. Lines of cancelled entries cannot be picked.
func Pick(entries []model.Entry, ids []string) ([]model.Line, error) {
	byID := make(map[string]model.Line)
	for _, l := range Lines(entries) {
		byID[l.ID] = l
	}
	out := make([]model.Line, 0, len(ids))
	for _, lineID := range ids {
		l, ok := byID[lineID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLine, lineID)
		}
		out = append(out, l)
	}
	return out, nil
}

// Merge returns copies of entries with the lettrage fields of the given lines
// applied, matched by line ID.
func Merge(entries []model.Entry, lettered []model.Line) []model.Entry {
	byID := make(map[string]model.Line, len(lettered))
	for _, l := range lettered {
		byID[l.ID] = l
	}
	out := make([]model.Entry, len(entries))
	for i, e := range entries {
		c := e.Clone()
		for j := range c.Lines {
			if l, ok := byID[c.Lines[j].ID]; ok {
				c.Lines[j].LettrageCode = l.LettrageCode
				c.Lines[j].LettrageDate = l.Clone().LettrageDate
			}
		}
		out[i] = c
	}
	return out
}
