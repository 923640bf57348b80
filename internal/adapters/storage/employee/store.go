package employee

import (
	"context"

	domain "frontdesk/internal/domain/employee"
)

// Store persists employees.
type Store interface {
	Save(ctx context.Context, value domain.Employee) error
	GetByEmail(ctx context.Context, email string) (domain.Employee, error)
	ListByName(ctx context.Context, name string) ([]domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
}

// AdminStore persists admins.
type AdminStore interface {
	Save(ctx context.Context, value domain.Admin) error
	GetByName(ctx context.Context, name string) (domain.Admin, error)
}
