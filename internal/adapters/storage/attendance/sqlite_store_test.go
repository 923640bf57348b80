package attendance

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"frontdesk/internal/adapters/storage"
	domain "frontdesk/internal/domain/attendance"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	return NewSQLiteStore(db)
}

func at(h, m int) time.Time {
	return time.Date(2024, 1, 1, h, m, 0, 0, time.UTC)
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	open := domain.Record{ID: "a1", EmployeeName: "Kim", CheckIn: at(9, 0)}
	if err := s.Save(ctx, open); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.GetByID(ctx, "a1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.CheckIn.Equal(at(9, 0)) || got.IsCheckedOut() {
		t.Errorf("got %+v", got)
	}

	if err := got.Close(at(17, 30)); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, got); err != nil {
		t.Fatalf("Save closed: %v", err)
	}
	got, _ = s.GetByID(ctx, "a1")
	if got.DisplayDuration() != "8h 30m" {
		t.Errorf("duration = %q", got.DisplayDuration())
	}

	if _, err := s.GetByID(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_LatestOpenByEmployee(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, r := range []domain.Record{
		{ID: "1", EmployeeName: "Kim", CheckIn: at(8, 0), CheckOut: at(9, 0)},
		{ID: "2", EmployeeName: "Kim", CheckIn: at(10, 0)},
		{ID: "3", EmployeeName: "Kim", CheckIn: at(11, 0)},
		{ID: "4", EmployeeName: "Lee", CheckIn: at(12, 0)},
	} {
		if err := s.Save(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.LatestOpenByEmployee(ctx, "Kim")
	if err != nil {
		t.Fatalf("LatestOpenByEmployee: %v", err)
	}
	if got.ID != "3" {
		t.Errorf("ID = %s, want 3", got.ID)
	}
	if _, err := s.LatestOpenByEmployee(ctx, "Park"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_ListWindowAndClosed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i, r := range []domain.Record{
		{EmployeeName: "Kim", CheckIn: at(8, 0), CheckOut: at(9, 0)},
		{EmployeeName: "Lee", CheckIn: at(8, 0)},
		{EmployeeName: "Park", CheckIn: at(8, 0), CheckOut: at(12, 0)},
	} {
		r.ID = string(rune('a' + i))
		if err := s.Save(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	page, err := s.List(ctx, ListFilter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 || page[0].EmployeeName != "Lee" || page[1].EmployeeName != "Park" {
		t.Errorf("page = %+v", page)
	}

	all, _ := s.List(ctx, ListFilter{})
	if len(all) != 3 {
		t.Errorf("zero limit should list everything, got %d", len(all))
	}

	closed, err := s.ListClosed(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(closed) != 2 || closed[0].EmployeeName != "Kim" || closed[1].EmployeeName != "Park" {
		t.Errorf("closed = %+v", closed)
	}
}
