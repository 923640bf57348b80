package spreadsheet

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"frontdesk/internal/domain/summary"
)

// Summary workbook sheet names.
const (
	SheetDaily   = "Daily"
	SheetMonthly = "Monthly"
)

// ContentTypeXLSX is the MIME type of the summary workbook.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteSummary writes t as a workbook with a Daily and a Monthly sheet.
// Hours are written as numbers rounded the same way the page shows them.
func WriteSummary(w io.Writer, t summary.Tables) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetDaily); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetMonthly); err != nil {
		return err
	}
	if err := writeSheet(f, SheetDaily, summary.DailyColumns, t.Daily); err != nil {
		return err
	}
	if err := writeSheet(f, SheetMonthly, summary.MonthlyColumns, t.Monthly); err != nil {
		return err
	}
	return f.Write(w)
}

func writeSheet(f *excelize.File, sheet string, columns []string, rows []summary.Row) error {
	for i, h := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("%s header: %w", sheet, err)
		}
	}
	for r, row := range rows {
		hours, err := strconv.ParseFloat(row.Hours, 64)
		if err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, r+2, err)
		}
		for c, v := range []any{row.Employee, row.Key, hours} {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("%s row %d: %w", sheet, r+2, err)
			}
		}
	}
	return f.SetColWidth(sheet, "A", "C", 18)
}
