package summary

import "frontdesk/internal/domain/attendance"

// Build aggregates closed attendance records into a Summary.
// Open records are ignored. Periods are keyed by the UTC check-in date
// (YYYY-MM-DD) and month (YYYY-MM). Employees and periods appear in the
// order they are first seen in records.
// PRE: none
// POST: Daily and Monthly are non-nil
func Build(records []attendance.Record) Summary {
	daily := newAccumulator()
	monthly := newAccumulator()
	for _, r := range records {
		worked, ok := r.Worked()
		if !ok {
			continue
		}
		hours := worked.Seconds() / 3600
		in := r.CheckIn.UTC()
		daily.add(r.EmployeeName, in.Format("2006-01-02"), hours)
		monthly.add(r.EmployeeName, in.Format("2006-01"), hours)
	}
	return Summary{Daily: daily.breakdowns(), Monthly: monthly.breakdowns()}
}

type accumulator struct {
	order  []string
	byName map[string]*Breakdown
	index  map[string]map[string]int
}

func newAccumulator() *accumulator {
	return &accumulator{
		byName: make(map[string]*Breakdown),
		index:  make(map[string]map[string]int),
	}
}

func (a *accumulator) add(employee, key string, hours float64) {
	b, ok := a.byName[employee]
	if !ok {
		b = &Breakdown{Employee: employee}
		a.byName[employee] = b
		a.index[employee] = make(map[string]int)
		a.order = append(a.order, employee)
	}
	if i, ok := a.index[employee][key]; ok {
		b.Entries[i].Hours += hours
		return
	}
	a.index[employee][key] = len(b.Entries)
	b.Entries = append(b.Entries, Entry{Key: key, Hours: hours})
}

func (a *accumulator) breakdowns() []Breakdown {
	out := make([]Breakdown, 0, len(a.order))
	for _, name := range a.order {
		out = append(out, *a.byName[name])
	}
	return out
}
