package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/compta/internal/model"
)

var fy2025 = model.Period{ID: "2025", Start: date(2025, 1, 1), End: date(2025, 12, 31)}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func debit(account, amount string) model.Line {
	return model.Line{AccountNumber: account, Movement: model.Debit(dec(amount))}
}

func credit(account, amount string) model.Line {
	return model.Line{AccountNumber: account, Movement: model.Credit(dec(amount))}
}

func aux(l model.Line, code, label string) model.Line {
	l.AuxAccount = code
	l.AuxLabel = label
	return l
}

func entry(id string, seq int, day time.Time, lines ...model.Line) model.Entry {
	for i := range lines {
		lines[i].EntryID = id
		lines[i].ID = id + string(rune('a'+i))
	}
	return model.Entry{
		ID:       id,
		Journal:  model.JournalMisc,
		Sequence: seq,
		Date:     day,
		Label:    "entry " + id,
		Status:   model.StatusValidated,
		PeriodID: "2025",
		Lines:    lines,
	}
}

// fixture is a small but complete year: a sale, its payment, a purchase,
// a partially paid supplier and a cancelled entry.
func fixture() []model.Entry {
	cancelled := entry("x1", 6, date(2025, 3, 1), debit("607", "999"), credit("512", "999"))
	cancelled.Status = model.StatusCancelled

	return []model.Entry{
		entry("e3", 3, date(2025, 2, 10),
			debit("512", "1200"),
			aux(credit("411", "1200"), "C001", "Dupont SARL")),
		entry("e1", 1, date(2025, 1, 15),
			aux(debit("411", "1200"), "C001", "Dupont SARL"),
			credit("706", "1000"),
			credit("44571", "200")),
		entry("e2", 2, date(2025, 1, 20),
			debit("607", "500"),
			debit("44566", "100"),
			aux(credit("401", "600"), "F002", "Martin Fournitures")),
		cancelled,
		entry("e4", 4, date(2025, 2, 28),
			aux(debit("401", "250"), "F002", "Martin Fournitures"),
			credit("512", "250")),
		entry("e5", 5, date(2025, 3, 5),
			aux(debit("411", "300"), "C000", "Albert"),
			credit("706", "300")),
	}
}
