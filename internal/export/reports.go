package export

import (
	"io"

	"github.com/cleared-dev/compta/internal/model"
)

// WriteTrialBalance writes the balance générale: one row per account and a
// totals row.
func WriteTrialBalance(w io.Writer, tb *model.TrialBalance) error {
	b, err := newWorkbook("Balance")
	if err != nil {
		return err
	}

	b.append(true, "Compte", "Libellé", "Total débit", "Total crédit", "Solde débiteur", "Solde créditeur")
	for _, l := range tb.Lines {
		b.append(false, l.AccountNumber, l.AccountLabel, l.TotalDebit, l.TotalCredit, l.SoldeDebiteur, l.SoldeCrediteur)
	}
	b.append(true, "Total", "", tb.TotalDebit, tb.TotalCredit, tb.TotalSoldeDebiteur, tb.TotalSoldeCrediteur)

	return b.flush(w, 12, 40, 16, 16, 16, 16)
}

var ledgerHeader = []any{"Compte", "Date", "Journal", "Pièce", "Libellé", "Débit", "Crédit", "Solde", "Lettrage"}

func (b *workbook) ledgerLines(lines []model.LedgerLine) {
	for _, l := range lines {
		b.append(false, l.AccountNumber, l.Date, string(l.Journal), l.PieceRef, l.Label,
			blankZero(l.Debit), blankZero(l.Credit), l.RunningBalance, l.LettrageCode)
	}
}

// WriteGeneralLedger writes the grand livre: for each account an opening
// row, its postings with running balance and a totals row.
func WriteGeneralLedger(w io.Writer, gl *model.GeneralLedger) error {
	b, err := newWorkbook("Grand livre")
	if err != nil {
		return err
	}

	b.append(true, ledgerHeader...)
	for _, a := range gl.Accounts {
		b.append(true, a.AccountNumber, nil, nil, nil, a.AccountLabel, nil, nil, a.OpeningBalance)
		b.ledgerLines(a.Lines)
		b.append(true, "Total "+a.AccountNumber, nil, nil, nil, nil, a.TotalDebit, a.TotalCredit, a.ClosingBalance)
		b.skip()
	}
	b.append(true, "Total général", nil, nil, nil, nil, gl.TotalDebit, gl.TotalCredit)

	return b.flush(w, 14, 12, 8, 12, 40, 14, 14, 14, 9)
}

// WriteSubsidiaryLedger writes the balance auxiliaire grouped by client or
// supplier.
func WriteSubsidiaryLedger(w io.Writer, sl *model.SubsidiaryLedger) error {
	name := "Auxiliaire clients"
	if sl.Kind == model.SubsidiarySuppliers {
		name = "Auxiliaire fournisseurs"
	}
	b, err := newWorkbook(name)
	if err != nil {
		return err
	}

	b.append(true, ledgerHeader...)
	for _, a := range sl.Accounts {
		b.append(true, a.AuxAccount, nil, nil, nil, a.AuxLabel, nil, nil, a.OpeningBalance)
		b.ledgerLines(a.Lines)
		b.append(true, "Total "+a.AuxAccount, nil, nil, nil, nil, a.TotalDebit, a.TotalCredit, a.Solde)
		b.skip()
	}
	b.append(true, "Total général", nil, nil, nil, nil, sl.TotalDebit, sl.TotalCredit)

	return b.flush(w, 14, 12, 8, 12, 40, 14, 14, 14, 9)
}
