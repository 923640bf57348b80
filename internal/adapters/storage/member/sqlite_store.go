package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"frontdesk/internal/adapters/storage"
	domain "frontdesk/internal/domain/member"
)

const columns = "id, name, email, membership_type, start_date, end_date"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new member store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanMember(scan func(dest ...any) error) (domain.Member, error) {
	var m domain.Member
	err := scan(&m.ID, &m.Name, &m.Email, &m.MembershipType, &m.StartDate, &m.EndDate)
	return m, err
}

// Save inserts or updates a member keyed by ID.
// PRE: value has been validated
// POST: the row for value.ID matches value
func (s *SQLiteStore) Save(ctx context.Context, value domain.Member) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO member (`+columns+`) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, email=excluded.email,
			membership_type=excluded.membership_type, start_date=excluded.start_date, end_date=excluded.end_date`,
		value.ID, value.Name, value.Email, value.MembershipType, value.StartDate, value.EndDate,
	)
	return err
}

// GetByEmail retrieves a member by email.
// POST: returns storage.ErrNotFound (wrapped) when no member has the email
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Member, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+columns+" FROM member WHERE email = ?", email)
	m, err := scanMember(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Member{}, fmt.Errorf("member %q: %w", email, storage.ErrNotFound)
	}
	return m, err
}

// List returns one window of members in registration order.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+columns+" FROM member ORDER BY seq LIMIT ? OFFSET ?", storage.SQLLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Member{}
	for rows.Next() {
		m, err := scanMember(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
