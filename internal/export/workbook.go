// Package export renders ledger reports as XLSX workbooks.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	dateFormat = "2006-01-02"
	// built-in number format "#,##0.00"
	amountFormat = 4
)

// workbook writes rows to a single-sheet file. The first error sticks and
// is returned by flush.
type workbook struct {
	f     *excelize.File
	sheet string
	row   int
	err   error

	bold       int
	amount     int
	boldAmount int
}

func newWorkbook(sheet string) (*workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	b := &workbook{f: f, sheet: sheet}
	styles := []struct {
		id    *int
		style *excelize.Style
	}{
		{&b.bold, &excelize.Style{Font: &excelize.Font{Bold: true}}},
		{&b.amount, &excelize.Style{NumFmt: amountFormat}},
		{&b.boldAmount, &excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: amountFormat}},
	}
	for _, s := range styles {
		id, err := f.NewStyle(s.style)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("creating style: %w", err)
		}
		*s.id = id
	}
	return b, nil
}

// blankZero leaves zero amounts empty in detail rows.
func blankZero(d decimal.Decimal) any {
	if d.IsZero() {
		return nil
	}
	return d
}

// append writes one row. Amounts are stored as exact numeric cells from
// their decimal representation; nil values leave the cell empty.
func (b *workbook) append(bold bool, values ...any) {
	if b.err != nil {
		return
	}
	b.row++
	for i, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, b.row)
		if err != nil {
			b.err = err
			return
		}
		style := 0
		switch v := v.(type) {
		case decimal.Decimal:
			err = b.f.SetCellDefault(b.sheet, cell, v.StringFixed(2))
			style = b.amount
			if bold {
				style = b.boldAmount
			}
		case time.Time:
			err = b.f.SetCellStr(b.sheet, cell, v.Format(dateFormat))
		case string:
			if v == "" {
				continue
			}
			err = b.f.SetCellStr(b.sheet, cell, v)
		default:
			err = b.f.SetCellValue(b.sheet, cell, v)
		}
		if err == nil && style == 0 && bold {
			style = b.bold
		}
		if err == nil && style != 0 {
			err = b.f.SetCellStyle(b.sheet, cell, cell, style)
		}
		if err != nil {
			b.err = fmt.Errorf("writing cell %s: %w", cell, err)
			return
		}
	}
}

func (b *workbook) skip() {
	b.row++
}

// flush sets column widths, writes the file to w and releases it.
func (b *workbook) flush(w io.Writer, widths ...float64) error {
	defer b.f.Close()
	if b.err != nil {
		return b.err
	}
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := b.f.SetColWidth(b.sheet, col, col, width); err != nil {
			return fmt.Errorf("setting width of %s: %w", col, err)
		}
	}
	if err := b.f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
