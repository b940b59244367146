package journal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/compta/internal/model"
)

// Code identifies the rule a ValidationError violates.
type Code string

const (
	CodeNoLines        Code = "NO_LINES"
	CodeInvalidLine    Code = "INVALID_LINE"
	CodeInvalidAccount Code = "INVALID_ACCOUNT"
	CodeUnbalanced     Code = "UNBALANCED"
	CodeZeroAmount     Code = "ZERO_AMOUNT"
	CodeUnknownAccount Code = "UNKNOWN_ACCOUNT"
)

// ValidationError describes a single rule violation.
type ValidationError struct {
	Code    Code
	EntryID string
	LineID  string // empty for entry-level violations
	Message string
}

func (e ValidationError) Error() string {
	if e.LineID != "" {
		return fmt.Sprintf("%s [%s/%s]: %s", e.Code, e.EntryID, e.LineID, e.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Code, e.EntryID, e.Message)
}

// Errors joins validation errors into one message, in order.
func Errors(errs []ValidationError) string {
	msgs := make([]string, len(errs))
	for i, ve := range errs {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether errs contains a violation with the given code.
func Has(errs []ValidationError, code Code) bool {
	for _, e := range errs {
		if e.Code == code {
			return true
		}
	}
	return false
}

// AccountChecker tests whether an account number exists in the chart of accounts.
type AccountChecker interface {
	Exists(number string) bool
}

// Validate checks an entry against the bookkeeping rules and returns every
// violation found. A nil result means the entry may be accepted.
func Validate(entry model.Entry) []ValidationError {
	var errs []ValidationError

	if len(entry.Lines) < 2 {
		errs = append(errs, ValidationError{
			Code:    CodeNoLines,
			EntryID: entry.ID,
			Message: fmt.Sprintf("entry needs at least 2 lines, has %d", len(entry.Lines)),
		})
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, line := range entry.Lines {
		lineID := lineRef(line, i)

		// Exactly one side, with a non-zero amount.
		if line.Movement.IsZero() {
			errs = append(errs, ValidationError{
				Code:    CodeInvalidLine,
				EntryID: entry.ID,
				LineID:  lineID,
				Message: "line must have exactly one of debit or credit",
			})
		} else if line.Movement.Amount().IsNegative() {
			errs = append(errs, ValidationError{
				Code:    CodeInvalidLine,
				EntryID: entry.ID,
				LineID:  lineID,
				Message: fmt.Sprintf("line amount %s is negative", line.Movement.Amount().StringFixed(2)),
			})
		}

		if strings.TrimSpace(line.AccountNumber) == "" {
			errs = append(errs, ValidationError{
				Code:    CodeInvalidAccount,
				EntryID: entry.ID,
				LineID:  lineID,
				Message: "line has no account number",
			})
		}

		totalDebit = totalDebit.Add(line.Debit())
		totalCredit = totalCredit.Add(line.Credit())
	}

	if !totalDebit.Equal(totalCredit) {
		errs = append(errs, ValidationError{
			Code:    CodeUnbalanced,
			EntryID: entry.ID,
			Message: fmt.Sprintf("debits (%s) != credits (%s)", totalDebit.StringFixed(2), totalCredit.StringFixed(2)),
		})
	}

	if totalDebit.IsZero() {
		errs = append(errs, ValidationError{
			Code:    CodeZeroAmount,
			EntryID: entry.ID,
			Message: "entry total is zero",
		})
	}

	return errs
}

// ValidateAgainstChart runs Validate and additionally reports lines whose
// account is missing from the caller's chart of accounts.
func ValidateAgainstChart(entry model.Entry, accounts AccountChecker) []ValidationError {
	errs := Validate(entry)
	for i, line := range entry.Lines {
		if strings.TrimSpace(line.AccountNumber) == "" {
			continue
		}
		if !accounts.Exists(line.AccountNumber) {
			errs = append(errs, ValidationError{
				Code:    CodeUnknownAccount,
				EntryID: entry.ID,
				LineID:  lineRef(line, i),
				Message: fmt.Sprintf("unknown account %s", line.AccountNumber),
			})
		}
	}
	return errs
}

// ValidateAll validates every entry and concatenates the violations.
func ValidateAll(entries []model.Entry) []ValidationError {
	var errs []ValidationError
	for _, e := range entries {
		errs = append(errs, Validate(e)...)
	}
	return errs
}

func lineRef(line model.Line, i int) string {
	if line.ID != "" {
		return line.ID
	}
	return fmt.Sprintf("#%d", i+1)
}
