package summary

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Entry is the hours recorded for one period key (a YYYY-MM-DD date or a YYYY-MM month).
type Entry struct {
	Key   string
	Hours float64
}

// Breakdown is one employee's entries, in the order they were received.
type Breakdown struct {
	Employee string
	Entries  []Entry
}

// Summary is the per-employee attendance aggregate produced by the backend.
// A nil Daily or Monthly slice means the key was absent; an empty non-nil
// slice means it was present with no employees.
type Summary struct {
	Daily   []Breakdown
	Monthly []Breakdown
}

// MalformedSummaryError reports summary input that cannot be rendered.
type MalformedSummaryError struct {
	Field  string
	Reason string
}

func (e *MalformedSummaryError) Error() string {
	if e.Field == "" {
		return "malformed summary: " + e.Reason
	}
	return fmt.Sprintf("malformed summary: %s: %s", e.Field, e.Reason)
}

// Column headers
var (
	DailyColumns   = []string{"Employee", "Date", "Hours"}
	MonthlyColumns = []string{"Employee", "Month", "Total hours"}
)

// Row is one rendered table line.
type Row struct {
	Employee string
	Key      string
	Hours    string
}

// Tables is the rendered form of a Summary.
type Tables struct {
	Daily   []Row
	Monthly []Row
}

// Render flattens s into daily and monthly rows, preserving input order.
// PRE: none
// POST: on success every entry yields exactly one row; employees with no
// entries yield no rows. On failure no rows are returned.
func Render(s Summary) (Tables, error) {
	if s.Daily == nil {
		return Tables{}, &MalformedSummaryError{Field: "daily", Reason: "missing"}
	}
	if s.Monthly == nil {
		return Tables{}, &MalformedSummaryError{Field: "monthly", Reason: "missing"}
	}
	return Tables{
		Daily:   flatten(s.Daily),
		Monthly: flatten(s.Monthly),
	}, nil
}

func flatten(bs []Breakdown) []Row {
	rows := []Row{}
	for _, b := range bs {
		for _, e := range b.Entries {
			rows = append(rows, Row{Employee: b.Employee, Key: e.Key, Hours: FormatHours(e.Hours)})
		}
	}
	return rows
}

// FormatHours renders hours with exactly two decimals.
// Rounding is half away from zero, applied to the shortest decimal
// representation of v, so 8.005 renders as "8.01" rather than the "8.00"
// that exact binary rounding would give.
func FormatHours(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	neg := math.Signbit(v)
	digits := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)

	intPart, frac, _ := strings.Cut(digits, ".")
	roundUp := len(frac) > 2 && frac[2] >= '5'
	for len(frac) < 2 {
		frac += "0"
	}
	frac = frac[:2]

	n := []byte(intPart + frac)
	if roundUp {
		i := len(n) - 1
		for ; i >= 0; i-- {
			if n[i] == '9' {
				n[i] = '0'
				continue
			}
			n[i]++
			break
		}
		if i < 0 {
			n = append([]byte{'1'}, n...)
		}
	}

	out := string(n[:len(n)-2]) + "." + string(n[len(n)-2:])
	if neg && strings.Trim(out, "0.") != "" {
		out = "-" + out
	}
	return out
}

// Table converts rows to a generic header plus cells layout.
func Table(columns []string, rows []Row) ([]string, [][]string) {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.Employee, r.Key, r.Hours})
	}
	return columns, cells
}
