// Package spreadsheet reads member rows from .xlsx/.xls uploads and writes
// the attendance summary as an .xlsx workbook.
package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// MaxRows bounds how many rows are read from a legacy .xls sheet.
const MaxRows = 100000

var (
	ErrNoWorksheet       = errors.New("no worksheet found")
	ErrMultipleSheets    = errors.New("multiple worksheets found; upload a file with a single sheet")
	ErrEmptyWorksheet    = errors.New("worksheet is empty")
	ErrUnsupportedFormat = errors.New("unsupported file type; upload .xlsx or .xls")
)

// ReadRows returns every row of the first worksheet as text cells.
// The format is chosen from the filename extension.
// PRE: filename ends in .xlsx, .xlsm or .xls
// POST: on success at least one row is returned
func ReadRows(r io.Reader, filename string) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		return readXLS(data)
	case ".xlsx", ".xlsm":
		return readXLSX(data)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func readXLS(data []byte) (rows [][]string, err error) {
	// The xls parser panics on some truncated files.
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("open xls: corrupt file: %v", r)
		}
	}()
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}
	switch n := workbook.NumSheets(); {
	case n == 0:
		return nil, ErrNoWorksheet
	case n > 1:
		return nil, ErrMultipleSheets
	}
	rows = workbook.ReadAllCells(MaxRows)
	if len(rows) == 0 {
		return nil, ErrEmptyWorksheet
	}
	return rows, nil
}

func readXLSX(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrNoWorksheet
	}
	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyWorksheet
	}
	return rows, nil
}
