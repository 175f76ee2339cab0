// Package sheet writes parsed NAV dump records to an Excel workbook.
package sheet

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/fundcagr/internal/amfi"
)

const (
	// DefaultPath is the workbook written when no path is given.
	DefaultPath = "output.xlsx"
	// DefaultSheet is the worksheet name used when none is given.
	DefaultSheet = "Sheet1"

	dateFormat = "yyyy-mm-dd hh:mm:ss"
)

// WriteXLSX writes records to path as a single worksheet with a header row.
// Null NAVs and unparsed dates become empty cells.
func WriteXLSX(path, sheetName string, records []amfi.Record) error {
	if path == "" {
		path = DefaultPath
	}
	if sheetName == "" {
		sheetName = DefaultSheet
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	fmtStr := dateFormat
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &fmtStr})
	if err != nil {
		return fmt.Errorf("creating date style: %w", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("opening stream writer: %w", err)
	}

	header := make([]interface{}, len(amfi.Columns))
	for i, c := range amfi.Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, recordRow(r, dateStyle)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flushing sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func recordRow(r amfi.Record, dateStyle int) []interface{} {
	row := make([]interface{}, len(amfi.Columns))

	if code, err := strconv.ParseInt(r.SchemeCode, 10, 64); err == nil {
		row[0] = code
	} else {
		row[0] = r.SchemeCode
	}
	row[1] = r.ISINGrowth
	row[2] = r.ISINReinvest
	row[3] = r.SchemeName
	if r.NAV.Valid {
		row[4] = r.NAV.Decimal.InexactFloat64()
	}
	if r.HasDate() {
		row[5] = excelize.Cell{StyleID: dateStyle, Value: r.Date}
	}
	return row
}
