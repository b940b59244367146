package accounts

import (
	"strings"

	"github.com/cleared-dev/compta/internal/model"
)

// Rules holds the account numbers the engine books to on its own.
type Rules struct {
	ClientPrefix   string // principal account of client subsidiary ledgers
	SupplierPrefix string // principal account of supplier subsidiary ledgers
	ProfitAccount  string // résultat de l'exercice (bénéfice)
	LossAccount    string // résultat de l'exercice (perte)
}

// DefaultRules returns the PCG defaults.
func DefaultRules() Rules {
	return Rules{
		ClientPrefix:   "411",
		SupplierPrefix: "401",
		ProfitAccount:  "120",
		LossAccount:    "129",
	}
}

// WithDefaults fills blank fields from DefaultRules.
func (r Rules) WithDefaults() Rules {
	d := DefaultRules()
	if strings.TrimSpace(r.ClientPrefix) == "" {
		r.ClientPrefix = d.ClientPrefix
	}
	if strings.TrimSpace(r.SupplierPrefix) == "" {
		r.SupplierPrefix = d.SupplierPrefix
	}
	if strings.TrimSpace(r.ProfitAccount) == "" {
		r.ProfitAccount = d.ProfitAccount
	}
	if strings.TrimSpace(r.LossAccount) == "" {
		r.LossAccount = d.LossAccount
	}
	return r
}

// ClassOf returns the PCG class of an account number: its first digit, or
// ClassNone when the number does not start with a digit.
func ClassOf(number string) model.AccountClass {
	number = strings.TrimSpace(number)
	if number == "" {
		return model.ClassNone
	}
	c := number[0]
	if c < '1' || c > '9' {
		return model.ClassNone
	}
	return model.AccountClass(c - '0')
}

// IsBalanceSheet reports whether the account is carried forward (classes 1-5).
func IsBalanceSheet(number string) bool {
	return ClassOf(number).BalanceSheet()
}

// IsIncomeStatement reports whether the account is reset at closing (classes 6-7).
func IsIncomeStatement(number string) bool {
	return ClassOf(number).IncomeStatement()
}
