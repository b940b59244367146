package ledger

import (
	"maps"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/compta/internal/accounts"
)

// Option configures a report builder.
type Option func(*options)

type options struct {
	generatedAt time.Time
	opening     map[string]decimal.Decimal
	rules       accounts.Rules
}

// WithGeneratedAt stamps the report. Without it GeneratedAt is the zero time,
// so a report is a pure function of its input.
func WithGeneratedAt(t time.Time) Option {
	return func(o *options) {
		o.generatedAt = t
	}
}

// WithOpeningBalances seeds running balances (debit minus credit). The general
// ledger keys the map by account number, the subsidiary ledger by auxiliary
// account. The trial balance ignores it.
func WithOpeningBalances(balances map[string]decimal.Decimal) Option {
	return func(o *options) {
		o.opening = maps.Clone(balances)
	}
}

// WithRules overrides the PCG account rules.
func WithRules(r accounts.Rules) Option {
	return func(o *options) {
		o.rules = r
	}
}

func newOptions(opts []Option) options {
	o := options{rules: accounts.DefaultRules()}
	for _, opt := range opts {
		opt(&o)
	}
	o.rules = o.rules.WithDefaults()
	return o
}

func (o options) openingFor(key string) decimal.Decimal {
	if b, ok := o.opening[key]; ok {
		return b
	}
	return decimal.Zero
}
