package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/compta/internal/ledger"
	"github.com/cleared-dev/compta/internal/model"
)

var fy2025 = model.Period{ID: "2025"}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleEntries() []model.Entry {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	return []model.Entry{
		{
			ID: "e1", Journal: model.JournalSales, Sequence: 1, Date: day, Label: "Facture F-001", PieceRef: "F-001",
			Status: model.StatusValidated,
			Lines: []model.Line{
				{ID: "e1a", AccountNumber: "411", AccountLabel: "Clients", AuxAccount: "C001", AuxLabel: "Dupont SARL", Movement: model.Debit(dec("1200.10")), LettrageCode: "A"},
				{ID: "e1b", AccountNumber: "706", AccountLabel: "Prestations de services", Movement: model.Credit(dec("1000.10"))},
				{ID: "e1c", AccountNumber: "44571", AccountLabel: "TVA collectée", Movement: model.Credit(dec("200"))},
			},
		},
		{
			ID: "e2", Journal: model.JournalBank, Sequence: 2, Date: day.AddDate(0, 0, 5), Label: "Règlement F-001",
			Status: model.StatusValidated,
			Lines: []model.Line{
				{ID: "e2a", AccountNumber: "512", AccountLabel: "Banque", Movement: model.Debit(dec("1200.10"))},
				{ID: "e2b", AccountNumber: "411", AuxAccount: "C001", Movement: model.Credit(dec("1200.10")), LettrageCode: "A"},
			},
		},
	}
}

func readRows(t *testing.T, buf *bytes.Buffer) (string, [][]string) {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return sheets[0], rows
}

func findRow(rows [][]string, first string) []string {
	for _, r := range rows {
		if len(r) > 0 && r[0] == first {
			return r
		}
	}
	return nil
}

func TestWriteTrialBalance(t *testing.T) {
	tb, err := ledger.ComputeTrialBalance(sampleEntries(), fy2025)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTrialBalance(&buf, tb))

	sheet, rows := readRows(t, &buf)
	assert.Equal(t, "Balance", sheet)
	require.Len(t, rows, len(tb.Lines)+2)
	assert.Equal(t, []string{"Compte", "Libellé", "Total débit", "Total crédit", "Solde débiteur", "Solde créditeur"}, rows[0])

	// 411 is fully settled: 1200.10 on both sides.
	assert.Equal(t, []string{"411", "Clients", "1200.10", "1200.10", "0.00", "0.00"}, rows[1])
	assert.Equal(t, []string{"Total", "", "2400.20", "2400.20", "1200.10", "1200.10"}, rows[len(rows)-1])
}

func TestWriteTrialBalance_AmountsAreNumeric(t *testing.T) {
	tb, err := ledger.ComputeTrialBalance(sampleEntries(), fy2025)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTrialBalance(&buf, tb))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	typ, err := f.GetCellType("Balance", "C2")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeUnset, typ, "amounts are stored as plain numbers")

	typ, err = f.GetCellType("Balance", "A2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeUnset, typ, "account numbers are text")
}

func TestWriteGeneralLedger(t *testing.T) {
	gl := ledger.ComputeGrandLivre(sampleEntries(), fy2025)

	var buf bytes.Buffer
	require.NoError(t, WriteGeneralLedger(&buf, gl))

	sheet, rows := readRows(t, &buf)
	assert.Equal(t, "Grand livre", sheet)
	assert.Equal(t, "Lettrage", rows[0][8])

	total := findRow(rows, "Total 411")
	require.NotNil(t, total)
	assert.Equal(t, []string{"Total 411", "", "", "", "", "1200.10", "1200.10", "0.00"}, total)

	var posting []string
	for _, r := range rows {
		if len(r) > 3 && r[0] == "512" && r[1] != "" {
			posting = r
		}
	}
	require.NotNil(t, posting)
	assert.Equal(t, []string{"512", "2025-03-15", "BQ", "", "Règlement F-001", "1200.10", "", "1200.10"}, posting)

	grand := findRow(rows, "Total général")
	require.NotNil(t, grand)
	assert.Equal(t, "2400.20", grand[5])
}

func TestWriteSubsidiaryLedger(t *testing.T) {
	sl, err := ledger.ComputeBalanceAuxiliaire(sampleEntries(), model.SubsidiaryClients, fy2025)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSubsidiaryLedger(&buf, sl))

	sheet, rows := readRows(t, &buf)
	assert.Equal(t, "Auxiliaire clients", sheet)

	head := findRow(rows, "C001")
	require.NotNil(t, head)
	assert.Equal(t, "Dupont SARL", head[4])

	total := findRow(rows, "Total C001")
	require.NotNil(t, total)
	assert.Equal(t, "0.00", total[7])

	var lettered int
	for _, r := range rows {
		if len(r) == 9 && r[8] == "A" {
			lettered++
		}
	}
	assert.Equal(t, 2, lettered)
}

func TestWriteSubsidiaryLedger_Suppliers(t *testing.T) {
	sl, err := ledger.ComputeBalanceAuxiliaire(nil, model.SubsidiarySuppliers, fy2025)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSubsidiaryLedger(&buf, sl))
	sheet, _ := readRows(t, &buf)
	assert.Equal(t, "Auxiliaire fournisseurs", sheet)
}
