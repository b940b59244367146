package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrBothSides is returned when a line carries both a debit and a credit amount.
var ErrBothSides = errors.New("line has both debit and credit")

// ErrNegativeAmount is returned when a debit or credit column holds a
// negative amount. The side carries the sign.
var ErrNegativeAmount = errors.New("negative amount")

// Side is the side of the ledger a movement is posted to.
type Side int

const (
	SideNone Side = iota
	SideDebit
	SideCredit
)

func (s Side) String() string {
	switch s {
	case SideDebit:
		return "debit"
	case SideCredit:
		return "credit"
	default:
		return "none"
	}
}

// Movement is the amount of a journal line together with its side.
// A movement is either a debit or a credit, never both. The zero value has no
// side and is rejected by validation.
type Movement struct {
	side   Side
	amount decimal.Decimal
}

// Debit returns a debit movement.
func Debit(amount decimal.Decimal) Movement {
	return Movement{side: SideDebit, amount: amount}
}

// Credit returns a credit movement.
func Credit(amount decimal.Decimal) Movement {
	return Movement{side: SideCredit, amount: amount}
}

// MovementFromColumns builds a movement from separate debit and credit columns.
// Empty (zero) columns are ignored; two non-zero columns or a negative
// column are an error.
func MovementFromColumns(debit, credit decimal.Decimal) (Movement, error) {
	hasDebit := !debit.IsZero()
	hasCredit := !credit.IsZero()
	switch {
	case debit.IsNegative() || credit.IsNegative():
		return Movement{}, fmt.Errorf("%w: debit %s, credit %s", ErrNegativeAmount, debit.StringFixed(2), credit.StringFixed(2))
	case hasDebit && hasCredit:
		return Movement{}, fmt.Errorf("%w: debit %s, credit %s", ErrBothSides, debit.StringFixed(2), credit.StringFixed(2))
	case hasDebit:
		return Debit(debit), nil
	case hasCredit:
		return Credit(credit), nil
	default:
		return Movement{}, nil
	}
}

func (m Movement) Side() Side              { return m.side }
func (m Movement) Amount() decimal.Decimal { return m.amount }

// IsZero reports whether the movement has no side or a zero amount.
func (m Movement) IsZero() bool {
	return m.side == SideNone || m.amount.IsZero()
}

// DebitAmount returns the amount if this is a debit, zero otherwise.
func (m Movement) DebitAmount() decimal.Decimal {
	if m.side == SideDebit {
		return m.amount
	}
	return decimal.Zero
}

// CreditAmount returns the amount if this is a credit, zero otherwise.
func (m Movement) CreditAmount() decimal.Decimal {
	if m.side == SideCredit {
		return m.amount
	}
	return decimal.Zero
}

// Signed returns debit minus credit.
func (m Movement) Signed() decimal.Decimal {
	return m.DebitAmount().Sub(m.CreditAmount())
}

func (m Movement) String() string {
	return fmt.Sprintf("%s %s", m.side, m.amount.StringFixed(2))
}
