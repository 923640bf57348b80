package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"frontdesk/internal/domain/attendance"
)

type stepClock struct {
	t time.Time
}

func (c *stepClock) Now() time.Time { return c.t }

func (c *stepClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func shiftDeps(store *memAttendanceStore, clock *stepClock) ShiftDeps {
	return ShiftDeps{AttendanceStore: store, Now: clock.Now}
}

// TestCheckInThenOutByName covers a full shift closed by employee name.
func TestCheckInThenOutByName(t *testing.T) {
	ctx := context.Background()
	store := &memAttendanceStore{}
	clock := &stepClock{t: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	deps := shiftDeps(store, clock)

	in, err := ExecuteCheckIn(ctx, " Kim ", deps)
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if in.EmployeeName != "Kim" || in.IsCheckedOut() || in.ID == "" {
		t.Errorf("record = %+v", in)
	}

	clock.advance(8*time.Hour + 30*time.Minute)
	out, err := ExecuteCheckOutByName(ctx, "Kim", deps)
	if err != nil {
		t.Fatalf("check out: %v", err)
	}
	if out.ID != in.ID {
		t.Errorf("closed %s, want %s", out.ID, in.ID)
	}
	if got := out.DisplayDuration(); got != "8h 30m" {
		t.Errorf("DisplayDuration() = %q", got)
	}

	if _, err := ExecuteCheckOutByName(ctx, "Kim", deps); !errors.Is(err, ErrNoOpenShift) {
		t.Errorf("second check out: got %v, want ErrNoOpenShift", err)
	}
}

// TestCheckOutByName_ClosesLatest verifies the most recent open shift is the one closed.
func TestCheckOutByName_ClosesLatest(t *testing.T) {
	ctx := context.Background()
	store := &memAttendanceStore{}
	clock := &stepClock{t: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	deps := shiftDeps(store, clock)

	first, _ := ExecuteCheckIn(ctx, "Kim", deps)
	clock.advance(time.Hour)
	second, _ := ExecuteCheckIn(ctx, "Kim", deps)
	clock.advance(time.Hour)

	out, err := ExecuteCheckOutByName(ctx, "Kim", deps)
	if err != nil {
		t.Fatal(err)
	}
	if out.ID != second.ID {
		t.Errorf("closed %s, want latest %s", out.ID, second.ID)
	}
	still, _ := store.GetByID(ctx, first.ID)
	if still.IsCheckedOut() {
		t.Error("older shift should still be open")
	}
}

func TestCheckOutByID(t *testing.T) {
	ctx := context.Background()
	store := &memAttendanceStore{}
	clock := &stepClock{t: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	deps := shiftDeps(store, clock)

	in, _ := ExecuteCheckIn(ctx, "Kim", deps)
	clock.advance(90 * time.Minute)

	out, err := ExecuteCheckOutByID(ctx, in.ID, deps)
	if err != nil {
		t.Fatalf("check out: %v", err)
	}
	if got := out.DisplayDuration(); got != "1h 30m" {
		t.Errorf("DisplayDuration() = %q", got)
	}
	if _, err := ExecuteCheckOutByID(ctx, in.ID, deps); !errors.Is(err, ErrAlreadyCheckedOut) {
		t.Errorf("repeat: got %v, want ErrAlreadyCheckedOut", err)
	}
	if _, err := ExecuteCheckOutByID(ctx, "missing", deps); !errors.Is(err, ErrAttendanceNotFound) {
		t.Errorf("unknown id: got %v, want ErrAttendanceNotFound", err)
	}
}

func TestCheckIn_EmptyName(t *testing.T) {
	deps := shiftDeps(&memAttendanceStore{}, &stepClock{t: time.Now()})
	_, err := ExecuteCheckIn(context.Background(), "   ", deps)
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, attendance.ErrEmptyEmployee) {
		t.Errorf("got %v", err)
	}
	_, err = ExecuteCheckOutByName(context.Background(), "", deps)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("check out: got %v", err)
	}
}
