package spreadsheet

import (
	"fmt"
	"strings"
	"time"

	"frontdesk/internal/domain/member"
)

// Member import columns. NAME and EMAIL are required.
const (
	ColName           = "NAME"
	ColEmail          = "EMAIL"
	ColMembershipType = "MEMBERSHIP_TYPE"
	ColStartDate      = "START_DATE"
	ColEndDate        = "END_DATE"
)

// DefaultMembershipType fills rows with an empty MEMBERSHIP_TYPE.
const DefaultMembershipType = "standard"

// MemberRow is a valid member parsed from sheet row Row (1-based, header is row 1).
type MemberRow struct {
	Row    int
	Member member.Member
}

// RowError describes why a sheet row was rejected.
type RowError struct {
	Row     int
	Message string
}

// HeaderError reports a sheet without a required column.
type HeaderError struct {
	Column string
}

func (e *HeaderError) Error() string {
	return "missing required column: " + e.Column
}

// dateLayouts are the cell renderings accepted for membership dates.
var dateLayouts = []string{member.DateLayout, "2006/01/02", "1/2/2006", "01-02-06", "1/2/06"}

// ParseMemberRows maps sheet rows to members. Blank rows are skipped.
// A missing START_DATE becomes today; a missing END_DATE becomes one year later.
// PRE: rows[0] is the header row
// POST: every data row is either in the returned members or in the row errors
func ParseMemberRows(rows [][]string, today time.Time) ([]MemberRow, []RowError, error) {
	if len(rows) == 0 {
		return nil, nil, ErrEmptyWorksheet
	}
	idx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		idx[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{ColName, ColEmail} {
		if _, ok := idx[col]; !ok {
			return nil, nil, &HeaderError{Column: col}
		}
	}

	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var members []MemberRow
	var rowErrs []RowError
	for n, row := range rows[1:] {
		rowNum := n + 2
		if blank(row) {
			continue
		}
		m := member.Member{
			Name:           cell(row, ColName),
			Email:          strings.ToLower(cell(row, ColEmail)),
			MembershipType: cell(row, ColMembershipType),
		}
		if m.MembershipType == "" {
			m.MembershipType = DefaultMembershipType
		}

		start, err := parseDate(cell(row, ColStartDate), today)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: "START_DATE: " + err.Error()})
			continue
		}
		end, err := parseDate(cell(row, ColEndDate), start.AddDate(1, 0, 0))
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: "END_DATE: " + err.Error()})
			continue
		}
		m.StartDate = start.Format(member.DateLayout)
		m.EndDate = end.Format(member.DateLayout)

		if err := m.Validate(); err != nil {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: err.Error()})
			continue
		}
		members = append(members, MemberRow{Row: rowNum, Member: m})
	}
	return members, rowErrs, nil
}

func parseDate(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
