package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"frontdesk/internal/adapters/storage"
)

// DevAccountSeedDeps holds stores needed for dev account seeding.
type DevAccountSeedDeps struct {
	Admins    AdminStore
	Employees EmployeeStore
}

// DevAccount is a login seeded for local development.
type DevAccount struct {
	Name     string
	Email    string // empty for the admin
	Position string
	Password string
}

// DevAdmin and DevEmployees are the accounts created by ExecuteSeedDevAccounts.
var (
	DevAdmin     = DevAccount{Name: "admin", Password: "frontdesk-admin"}
	DevEmployees = []DevAccount{
		{Name: "Kim", Email: "kim@frontdesk.test", Position: "reception", Password: "frontdesk-staff"},
		{Name: "Lee", Email: "lee@frontdesk.test", Position: "trainer", Password: "frontdesk-staff"},
	}
)

// ExecuteSeedDevAccounts creates the dev admin and employees if they don't already exist.
// Safe to run on every start.
// PRE: schema is initialised
// POST: one admin and len(DevEmployees) employees exist
func ExecuteSeedDevAccounts(ctx context.Context, deps DevAccountSeedDeps) error {
	created := 0

	_, err := ExecuteRegisterAdmin(ctx, LoginInput{Name: DevAdmin.Name, Password: DevAdmin.Password}, LoginDeps{Admins: deps.Admins})
	switch {
	case err == nil:
		created++
	case !errors.Is(err, ErrAdminExists):
		return fmt.Errorf("seed admin %s: %w", DevAdmin.Name, err)
	}

	for _, def := range DevEmployees {
		_, err := deps.Employees.GetByEmail(ctx, def.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("seed employee %s: %w", def.Email, err)
		}
		in := CreateEmployeeInput{Name: def.Name, Email: def.Email, Position: def.Position, Password: def.Password}
		if _, err := ExecuteCreateEmployee(ctx, in, CreateEmployeeDeps{EmployeeStore: deps.Employees}); err != nil {
			return fmt.Errorf("seed employee %s: %w", def.Email, err)
		}
		created++
	}

	if created > 0 {
		slog.Info("seed_event", "event", "dev_accounts_seeded", "created", created)
	}
	return nil
}
