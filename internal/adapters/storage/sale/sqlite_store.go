package sale

import (
	"context"
	"fmt"
	"time"

	"frontdesk/internal/adapters/storage"
	domain "frontdesk/internal/domain/sale"
)

// DateLayout is how sale dates are stored and sent.
const DateLayout = "2006-01-02"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new sale store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save inserts or updates a sale keyed by ID.
// PRE: value has been validated
func (s *SQLiteStore) Save(ctx context.Context, value domain.Sale) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sale (id, sale_date, amount) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET sale_date=excluded.sale_date, amount=excluded.amount`,
		value.ID, value.Date.Format(DateLayout), value.Amount,
	)
	return err
}

// List returns one window of sales in recording order.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Sale, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, sale_date, amount FROM sale ORDER BY seq LIMIT ? OFFSET ?",
		storage.SQLLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Sale{}
	for rows.Next() {
		var v domain.Sale
		var date string
		if err := rows.Scan(&v.ID, &date, &v.Amount); err != nil {
			return nil, err
		}
		if v.Date, err = time.Parse(DateLayout, date); err != nil {
			return nil, fmt.Errorf("failed to parse sale_date: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Total sums every sale amount; an empty table totals 0.
func (s *SQLiteStore) Total(ctx context.Context) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(amount), 0) FROM sale").Scan(&total)
	return total, err
}
