package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"frontdesk/internal/adapters/storage"
	"frontdesk/internal/domain/employee"
)

// EmployeeStore defines the employee persistence needed by CreateEmployee.
type EmployeeStore interface {
	Save(ctx context.Context, e employee.Employee) error
	GetByEmail(ctx context.Context, email string) (employee.Employee, error)
}

// CreateEmployeeInput carries the admin-entered employee fields.
type CreateEmployeeInput struct {
	Name     string
	Email    string
	Position string
	Password string
}

// CreateEmployeeDeps holds dependencies for CreateEmployee.
type CreateEmployeeDeps struct {
	EmployeeStore EmployeeStore
}

// ExecuteCreateEmployee registers a staff member who can then log in.
// PRE: none
// POST: employee saved with a bcrypt password hash
// INVARIANT: email is unique
func ExecuteCreateEmployee(ctx context.Context, input CreateEmployeeInput, deps CreateEmployeeDeps) (employee.Employee, error) {
	e := employee.Employee{
		ID:       uuid.New().String(),
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Position: strings.TrimSpace(input.Position),
	}
	if err := e.Validate(); err != nil {
		return employee.Employee{}, invalid(err)
	}

	_, err := deps.EmployeeStore.GetByEmail(ctx, e.Email)
	switch {
	case err == nil:
		return employee.Employee{}, ErrEmployeeEmailTaken
	case !errors.Is(err, storage.ErrNotFound):
		return employee.Employee{}, err
	}

	if err := e.SetPassword(input.Password); err != nil {
		return employee.Employee{}, invalid(err)
	}
	if err := deps.EmployeeStore.Save(ctx, e); err != nil {
		return employee.Employee{}, err
	}
	slog.Info("auth_event", "event", "employee_created", "name", e.Name)
	return e, nil
}
