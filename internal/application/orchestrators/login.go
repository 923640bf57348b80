package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"frontdesk/internal/adapters/storage"
	"frontdesk/internal/domain/employee"
	"frontdesk/internal/domain/session"
)

// EmployeeStoreForLogin is the employee lookup needed by employee login.
type EmployeeStoreForLogin interface {
	ListByName(ctx context.Context, name string) ([]employee.Employee, error)
}

// AdminStore persists admins.
type AdminStore interface {
	Save(ctx context.Context, a employee.Admin) error
	GetByName(ctx context.Context, name string) (employee.Admin, error)
}

// LoginInput carries the login and admin registration credentials.
type LoginInput struct {
	Name     string
	Password string
}

// LoginResult is the session descriptor returned to the client.
type LoginResult struct {
	Message string
	Role    string
	Name    string
}

// LoginDeps holds dependencies for the login use cases.
type LoginDeps struct {
	Employees EmployeeStoreForLogin
	Admins    AdminStore
}

// ExecuteEmployeeLogin checks employee credentials.
// Names are not unique; any employee with the name and a matching password logs in.
// PRE: none
// POST: on success Role is "employee"; otherwise ErrInvalidCredentials
func ExecuteEmployeeLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}
	candidates, err := deps.Employees.ListByName(ctx, name)
	if err != nil {
		return LoginResult{}, err
	}
	for _, e := range candidates {
		if e.CheckPassword(input.Password) == nil {
			slog.Info("auth_event", "event", "login_success", "role", session.RoleEmployee, "name", name)
			return LoginResult{Message: "Employee login successful", Role: session.RoleEmployee, Name: e.Name}, nil
		}
	}
	slog.Info("auth_event", "event", "login_failed", "role", session.RoleEmployee, "name", name, "candidates", len(candidates))
	return LoginResult{}, ErrInvalidCredentials
}

// ExecuteAdminLogin checks admin credentials.
// PRE: none
// POST: on success Role is "admin"; otherwise ErrInvalidCredentials
func ExecuteAdminLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}
	a, err := deps.Admins.GetByName(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		slog.Info("auth_event", "event", "login_failed", "role", session.RoleAdmin, "name", name, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if err := a.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "role", session.RoleAdmin, "name", name, "reason", "wrong_password")
		return LoginResult{}, ErrInvalidCredentials
	}
	slog.Info("auth_event", "event", "login_success", "role", session.RoleAdmin, "name", name)
	return LoginResult{Message: "Admin login successful", Role: session.RoleAdmin, Name: a.Name}, nil
}

// ExecuteRegisterAdmin creates an admin with a hashed password.
// PRE: none
// POST: a new admin exists with a unique name; ErrAdminExists if the name is taken
func ExecuteRegisterAdmin(ctx context.Context, input LoginInput, deps LoginDeps) (employee.Admin, error) {
	a := employee.Admin{ID: uuid.New().String(), Name: strings.TrimSpace(input.Name)}
	if err := a.Validate(); err != nil {
		return employee.Admin{}, invalid(err)
	}
	_, err := deps.Admins.GetByName(ctx, a.Name)
	switch {
	case err == nil:
		return employee.Admin{}, ErrAdminExists
	case !errors.Is(err, storage.ErrNotFound):
		return employee.Admin{}, err
	}
	if err := a.SetPassword(input.Password); err != nil {
		return employee.Admin{}, invalid(err)
	}
	if err := deps.Admins.Save(ctx, a); err != nil {
		return employee.Admin{}, err
	}
	slog.Info("auth_event", "event", "admin_registered", "name", a.Name)
	return a, nil
}
