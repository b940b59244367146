package period

import (
	"github.com/cleared-dev/compta/internal/accounts"
	"github.com/cleared-dev/compta/internal/model"
)

// Option configures closing and opening entries.
type Option func(*options)

type options struct {
	rules          accounts.Rules
	closingJournal model.JournalCode
	openingJournal model.JournalCode
}

// WithRules overrides the result accounts.
func WithRules(r accounts.Rules) Option {
	return func(o *options) {
		o.rules = r
	}
}

// WithJournals overrides the journals of the closing and opening entries.
// Blank codes keep the defaults (OD and AN).
func WithJournals(closing, opening model.JournalCode) Option {
	return func(o *options) {
		if closing != "" {
			o.closingJournal = closing
		}
		if opening != "" {
			o.openingJournal = opening
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		rules:          accounts.DefaultRules(),
		closingJournal: model.JournalMisc,
		openingJournal: model.JournalOpening,
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.rules = o.rules.WithDefaults()
	return o
}
