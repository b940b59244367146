package period

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/compta/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func simple(entryID string, status model.EntryStatus, debitAcct, creditAcct, amount string) model.Entry {
	return model.Entry{
		ID:       entryID,
		Journal:  model.JournalMisc,
		Date:     date(2025, 6, 1),
		Status:   status,
		PeriodID: "2025",
		Lines: []model.Line{
			{ID: entryID + "a", EntryID: entryID, AccountNumber: debitAcct, Movement: model.Debit(dec(amount))},
			{ID: entryID + "b", EntryID: entryID, AccountNumber: creditAcct, Movement: model.Credit(dec(amount))},
		},
	}
}

func tbRow(account, d, c string) model.TrialBalanceLine {
	return model.TrialBalanceLine{AccountNumber: account, TotalDebit: dec(d), TotalCredit: dec(c)}
}

func lineFor(e model.Entry, account string) (model.Line, bool) {
	for _, l := range e.Lines {
		if l.AccountNumber == account {
			return l, true
		}
	}
	return model.Line{}, false
}
