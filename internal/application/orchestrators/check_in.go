package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"frontdesk/internal/adapters/storage"
	"frontdesk/internal/domain/attendance"
)

// AttendanceStore defines the attendance persistence needed by check-in and check-out.
type AttendanceStore interface {
	Save(ctx context.Context, r attendance.Record) error
	GetByID(ctx context.Context, id string) (attendance.Record, error)
	LatestOpenByEmployee(ctx context.Context, employeeName string) (attendance.Record, error)
}

// ShiftDeps holds dependencies for check-in and check-out.
type ShiftDeps struct {
	AttendanceStore AttendanceStore
	Now             func() time.Time
}

func (d ShiftDeps) now() time.Time {
	if d.Now == nil {
		return time.Now().UTC()
	}
	return d.Now().UTC()
}

// ExecuteCheckIn opens a shift for employeeName at the current time.
// PRE: none
// POST: a new open record is saved
func ExecuteCheckIn(ctx context.Context, employeeName string, deps ShiftDeps) (attendance.Record, error) {
	r := attendance.Record{
		ID:           uuid.New().String(),
		EmployeeName: strings.TrimSpace(employeeName),
		CheckIn:      deps.now(),
	}
	if err := r.Validate(); err != nil {
		return attendance.Record{}, invalid(err)
	}
	if err := deps.AttendanceStore.Save(ctx, r); err != nil {
		return attendance.Record{}, err
	}
	slog.Info("checkin_event", "event", "check_in", "employee", r.EmployeeName, "record_id", r.ID)
	return r, nil
}

// ExecuteCheckOutByName closes the employee's most recent open shift.
// PRE: none
// POST: that record has CheckOut set; ErrNoOpenShift when there is none
func ExecuteCheckOutByName(ctx context.Context, employeeName string, deps ShiftDeps) (attendance.Record, error) {
	name := strings.TrimSpace(employeeName)
	if name == "" {
		return attendance.Record{}, invalid(attendance.ErrEmptyEmployee)
	}
	r, err := deps.AttendanceStore.LatestOpenByEmployee(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return attendance.Record{}, ErrNoOpenShift
	}
	if err != nil {
		return attendance.Record{}, err
	}
	return closeShift(ctx, r, deps)
}

// ExecuteCheckOutByID closes the shift with the given record ID.
// PRE: none
// POST: that record has CheckOut set; ErrAttendanceNotFound for an unknown id,
// ErrAlreadyCheckedOut for a closed one
func ExecuteCheckOutByID(ctx context.Context, id string, deps ShiftDeps) (attendance.Record, error) {
	r, err := deps.AttendanceStore.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return attendance.Record{}, ErrAttendanceNotFound
	}
	if err != nil {
		return attendance.Record{}, err
	}
	return closeShift(ctx, r, deps)
}

func closeShift(ctx context.Context, r attendance.Record, deps ShiftDeps) (attendance.Record, error) {
	if err := r.Close(deps.now()); err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return attendance.Record{}, ErrAlreadyCheckedOut
		}
		return attendance.Record{}, invalid(err)
	}
	if err := deps.AttendanceStore.Save(ctx, r); err != nil {
		return attendance.Record{}, err
	}
	slog.Info("checkin_event", "event", "check_out", "employee", r.EmployeeName, "record_id", r.ID, "worked", r.DisplayDuration())
	return r, nil
}
