package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"frontdesk/internal/adapters/storage"
	domain "frontdesk/internal/domain/attendance"
)

const columns = "id, employee_name, check_in, check_out"

// SQLiteStore implements Store using SQLite. Times are stored as RFC 3339 UTC.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new attendance store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanRecord(scan func(dest ...any) error) (domain.Record, error) {
	var r domain.Record
	var checkIn string
	var checkOut sql.NullString
	if err := scan(&r.ID, &r.EmployeeName, &checkIn, &checkOut); err != nil {
		return domain.Record{}, err
	}
	var err error
	if r.CheckIn, err = domain.ParseTimestamp(checkIn); err != nil {
		return domain.Record{}, fmt.Errorf("failed to parse check_in: %w", err)
	}
	if checkOut.Valid && checkOut.String != "" {
		if r.CheckOut, err = domain.ParseTimestamp(checkOut.String); err != nil {
			return domain.Record{}, fmt.Errorf("failed to parse check_out: %w", err)
		}
	}
	return r, nil
}

// storedLayout is fixed width so that stored times sort lexically.
const storedLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(storedLayout)
}

// Save inserts or updates a record keyed by ID.
// PRE: value has been validated
// POST: the row for value.ID matches value; an open shift stores NULL check_out
func (s *SQLiteStore) Save(ctx context.Context, value domain.Record) error {
	var checkOut any
	if value.IsCheckedOut() {
		checkOut = formatTime(value.CheckOut)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attendance (`+columns+`) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET employee_name=excluded.employee_name,
			check_in=excluded.check_in, check_out=excluded.check_out`,
		value.ID, value.EmployeeName, formatTime(value.CheckIn), checkOut,
	)
	return err
}

// GetByID retrieves a record by ID.
// POST: returns storage.ErrNotFound (wrapped) for an unknown id
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Record, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+columns+" FROM attendance WHERE id = ?", id)
	r, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Record{}, fmt.Errorf("attendance %q: %w", id, storage.ErrNotFound)
	}
	return r, err
}

// LatestOpenByEmployee returns the employee's open shift with the latest check-in.
// POST: returns storage.ErrNotFound (wrapped) when the employee has no open shift
func (s *SQLiteStore) LatestOpenByEmployee(ctx context.Context, employeeName string) (domain.Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+columns+" FROM attendance WHERE employee_name = ? AND check_out IS NULL ORDER BY check_in DESC, seq DESC LIMIT 1",
		employeeName)
	r, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Record{}, fmt.Errorf("open shift for %q: %w", employeeName, storage.ErrNotFound)
	}
	return r, err
}

// List returns one window of records in check-in order of creation.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Record, error) {
	return s.query(ctx, "SELECT "+columns+" FROM attendance ORDER BY seq LIMIT ? OFFSET ?",
		storage.SQLLimit(filter.Limit), filter.Offset)
}

// ListClosed returns every checked-out record in creation order.
func (s *SQLiteStore) ListClosed(ctx context.Context) ([]domain.Record, error) {
	return s.query(ctx, "SELECT "+columns+" FROM attendance WHERE check_out IS NOT NULL ORDER BY seq")
}

func (s *SQLiteStore) query(ctx context.Context, q string, args ...any) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Record{}
	for rows.Next() {
		r, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
