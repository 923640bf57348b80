package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"frontdesk/internal/adapters/storage"
	domain "frontdesk/internal/domain/employee"
)

const employeeColumns = "id, name, email, position, password_hash"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new employee store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanEmployee(scan func(dest ...any) error) (domain.Employee, error) {
	var e domain.Employee
	err := scan(&e.ID, &e.Name, &e.Email, &e.Position, &e.PasswordHash)
	return e, err
}

// Save inserts or updates an employee keyed by ID.
// PRE: value has been validated and has a password hash
// POST: the row for value.ID matches value
func (s *SQLiteStore) Save(ctx context.Context, value domain.Employee) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO employee (`+employeeColumns+`) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, email=excluded.email,
			position=excluded.position, password_hash=excluded.password_hash`,
		value.ID, value.Name, value.Email, value.Position, value.PasswordHash,
	)
	return err
}

// GetByEmail retrieves an employee by email.
// PRE: email is non-empty
// POST: returns storage.ErrNotFound (wrapped) when no employee has the email
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Employee, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+employeeColumns+" FROM employee WHERE email = ?", email)
	e, err := scanEmployee(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Employee{}, fmt.Errorf("employee %q: %w", email, storage.ErrNotFound)
	}
	return e, err
}

// ListByName returns every employee with the given name, oldest first.
// Employee names are not unique.
func (s *SQLiteStore) ListByName(ctx context.Context, name string) ([]domain.Employee, error) {
	return s.query(ctx, "SELECT "+employeeColumns+" FROM employee WHERE name = ? ORDER BY seq", name)
}

// List returns all employees in registration order.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Employee, error) {
	return s.query(ctx, "SELECT "+employeeColumns+" FROM employee ORDER BY seq")
}

func (s *SQLiteStore) query(ctx context.Context, q string, args ...any) ([]domain.Employee, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// AdminSQLiteStore implements AdminStore using SQLite.
type AdminSQLiteStore struct {
	db storage.SQLDB
}

// NewAdminSQLiteStore creates a new admin store.
func NewAdminSQLiteStore(db storage.SQLDB) *AdminSQLiteStore {
	return &AdminSQLiteStore{db: db}
}

// Save inserts or updates an admin keyed by ID.
func (s *AdminSQLiteStore) Save(ctx context.Context, value domain.Admin) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admin (id, name, password_hash) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, password_hash=excluded.password_hash`,
		value.ID, value.Name, value.PasswordHash,
	)
	return err
}

// GetByName retrieves an admin by its unique name.
func (s *AdminSQLiteStore) GetByName(ctx context.Context, name string) (domain.Admin, error) {
	var a domain.Admin
	err := s.db.QueryRowContext(ctx, "SELECT id, name, password_hash FROM admin WHERE name = ?", name).
		Scan(&a.ID, &a.Name, &a.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Admin{}, fmt.Errorf("admin %q: %w", name, storage.ErrNotFound)
	}
	return a, err
}
