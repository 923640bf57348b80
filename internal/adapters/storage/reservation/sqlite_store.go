package reservation

import (
	"context"
	"fmt"
	"time"

	"frontdesk/internal/adapters/storage"
	domain "frontdesk/internal/domain/reservation"
)

// DateLayout is how reservation dates are stored and sent.
const DateLayout = "2006-01-02T15:04:05"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new reservation store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save inserts or updates a reservation keyed by ID.
// PRE: value has been validated
func (s *SQLiteStore) Save(ctx context.Context, value domain.Reservation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reservation (id, customer_name, reservation_date, status, source) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET customer_name=excluded.customer_name,
			reservation_date=excluded.reservation_date, status=excluded.status, source=excluded.source`,
		value.ID, value.CustomerName, value.Date.Format(DateLayout), value.Status, value.Source,
	)
	return err
}

// List returns one window of reservations in booking order.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Reservation, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, customer_name, reservation_date, status, source FROM reservation ORDER BY seq LIMIT ? OFFSET ?",
		storage.SQLLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Reservation{}
	for rows.Next() {
		var r domain.Reservation
		var date string
		if err := rows.Scan(&r.ID, &r.CustomerName, &date, &r.Status, &r.Source); err != nil {
			return nil, err
		}
		if r.Date, err = time.Parse(DateLayout, date); err != nil {
			return nil, fmt.Errorf("failed to parse reservation_date: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
