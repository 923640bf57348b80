package attendance

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyEmployee      = errors.New("attendance must name an employee")
	ErrMissingCheckIn     = errors.New("check-in time must be set")
	ErrCheckOutBeforeIn   = errors.New("check-out time cannot be before check-in time")
	ErrAlreadyCheckedOut  = errors.New("attendance record is already checked out")
	ErrUnsupportedTimeFmt = errors.New("unsupported time format")
)

// Record is one employee shift: a check-in and an optional check-out.
type Record struct {
	ID           string
	EmployeeName string
	CheckIn      time.Time
	CheckOut     time.Time // zero while the shift is open
}

// Validate checks if the Record has valid data.
// PRE: Record struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: EmployeeName must not be empty, CheckIn must be set
func (r *Record) Validate() error {
	if strings.TrimSpace(r.EmployeeName) == "" {
		return ErrEmptyEmployee
	}
	if r.CheckIn.IsZero() {
		return ErrMissingCheckIn
	}
	if !r.CheckOut.IsZero() && r.CheckOut.Before(r.CheckIn) {
		return ErrCheckOutBeforeIn
	}
	return nil
}

// IsCheckedOut returns true if the shift has been closed.
func (r *Record) IsCheckedOut() bool {
	return !r.CheckOut.IsZero()
}

// Close sets the check-out time.
// PRE: record is open
// POST: CheckOut == at
func (r *Record) Close(at time.Time) error {
	if r.IsCheckedOut() {
		return ErrAlreadyCheckedOut
	}
	if at.Before(r.CheckIn) {
		return ErrCheckOutBeforeIn
	}
	r.CheckOut = at
	return nil
}

// Worked returns check-out minus check-in. ok is false for an open shift.
func (r *Record) Worked() (d time.Duration, ok bool) {
	if !r.IsCheckedOut() {
		return 0, false
	}
	return r.CheckOut.Sub(r.CheckIn), true
}

// DisplayDuration renders the worked time as whole hours and whole
// remaining minutes, truncating both. Open shifts and negative spans
// render as "".
func (r *Record) DisplayDuration() string {
	d, ok := r.Worked()
	if !ok || d < 0 {
		return ""
	}
	return FormatWorked(d)
}

// FormatWorked renders a non-negative duration as "8h 30m".
func FormatWorked(d time.Duration) string {
	hours := int64(d / time.Hour)
	minutes := int64((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// ParseTimestamp accepts RFC 3339 timestamps and the naive ISO 8601 form
// ("2024-01-01T09:00:00", optionally with fractional seconds) emitted by
// backends that store UTC without an offset. Naive values are read as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnsupportedTimeFmt, value)
}
