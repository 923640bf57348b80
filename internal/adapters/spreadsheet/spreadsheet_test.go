package spreadsheet

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"frontdesk/internal/domain/summary"
)

// buildXLSX writes rows into a single-sheet workbook.
func buildXLSX(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("SetCellValue: %v", err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return buf.Bytes()
}

func TestReadRows_XLSX(t *testing.T) {
	data := buildXLSX(t, [][]string{
		{"NAME", "EMAIL"},
		{"Kim", "kim@example.com"},
	})
	rows, err := ReadRows(bytes.NewReader(data), "members.XLSX")
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "Kim" {
		t.Errorf("rows = %v", rows)
	}
}

func TestReadRows_Errors(t *testing.T) {
	if _, err := ReadRows(strings.NewReader("a,b"), "members.csv"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("csv: err = %v", err)
	}
	if _, err := ReadRows(strings.NewReader("not a workbook"), "members.xlsx"); err == nil {
		t.Error("garbage xlsx should fail")
	}
	if _, err := ReadRows(strings.NewReader("not a workbook"), "members.xls"); err == nil {
		t.Error("garbage xls should fail")
	}
	empty := buildXLSX(t, nil)
	if _, err := ReadRows(bytes.NewReader(empty), "empty.xlsx"); !errors.Is(err, ErrEmptyWorksheet) {
		t.Errorf("empty: err = %v", err)
	}
}

func TestParseMemberRows(t *testing.T) {
	today := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := [][]string{
		{" name ", "Email", "MEMBERSHIP_TYPE", "START_DATE", "END_DATE", "NOTES"},
		{"Kim", "KIM@example.com", "gold", "2024-01-01", "2024-12-31"},
		{"Lee", "lee@example.com"},
		{"", "", "", "", ""},
		{"", "nobody@example.com"},
		{"Park", "park@example.com", "", "31/31/2024"},
		{"Choi", "choi@example.com", "", "2024-05-01", "2024-04-01"},
		{"Jung", "jung@example.com", "", "1/15/2024", "1/2/06"},
	}

	members, rowErrs, err := ParseMemberRows(rows, today)
	if err != nil {
		t.Fatalf("ParseMemberRows: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("members = %+v", members)
	}
	kim := members[0]
	if kim.Row != 2 || kim.Member.Email != "kim@example.com" || kim.Member.MembershipType != "gold" {
		t.Errorf("kim = %+v", kim)
	}
	lee := members[1].Member
	if lee.StartDate != "2024-03-01" || lee.EndDate != "2025-03-01" || lee.MembershipType != DefaultMembershipType {
		t.Errorf("lee defaults = %+v", lee)
	}

	wantRows := []int{5, 6, 7, 8}
	if len(rowErrs) != len(wantRows) {
		t.Fatalf("rowErrs = %+v", rowErrs)
	}
	for i, re := range rowErrs {
		if re.Row != wantRows[i] {
			t.Errorf("rowErrs[%d].Row = %d, want %d", i, re.Row, wantRows[i])
		}
	}
	if !strings.HasPrefix(rowErrs[1].Message, "START_DATE") {
		t.Errorf("Park message = %q", rowErrs[1].Message)
	}
}

func TestParseMemberRows_MissingColumn(t *testing.T) {
	_, _, err := ParseMemberRows([][]string{{"NAME", "PHONE"}}, time.Now())
	var he *HeaderError
	if !errors.As(err, &he) || he.Column != ColEmail {
		t.Errorf("err = %v, want missing EMAIL", err)
	}
}

func TestWriteSummary_RoundTrip(t *testing.T) {
	tables := summary.Tables{
		Daily:   []summary.Row{{Employee: "Kim", Key: "2024-01-01", Hours: "8.01"}},
		Monthly: []summary.Row{{Employee: "Kim", Key: "2024-01", Hours: "160.10"}},
	}
	var buf bytes.Buffer
	if err := WriteSummary(&buf, tables); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 2 || got[0] != SheetDaily || got[1] != SheetMonthly {
		t.Fatalf("sheets = %v", got)
	}
	daily, _ := f.GetRows(SheetDaily)
	if len(daily) != 2 || daily[0][2] != "Hours" || daily[1][0] != "Kim" {
		t.Errorf("daily = %v", daily)
	}
	monthly, _ := f.GetRows(SheetMonthly)
	if len(monthly) != 2 || monthly[0][2] != "Total hours" || monthly[1][2] != "160.1" {
		t.Errorf("monthly = %v", monthly)
	}
}

func TestWriteSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, summary.Tables{}); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected a workbook even with no rows")
	}
}
