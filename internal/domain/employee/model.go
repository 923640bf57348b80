package employee

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength     = 100
	MaxEmailLength    = 254
	MinPasswordLength = 8
)

// HashCost is the bcrypt cost used by SetPassword. Tests lower it.
var HashCost = 12

// Domain errors
var (
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrNameTooLong      = errors.New("name cannot exceed 100 characters")
	ErrInvalidEmail     = errors.New("email must contain '@'")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrWrongPassword    = errors.New("incorrect password")
)

// Employee is a staff member who can log in and record attendance.
type Employee struct {
	ID           string
	Name         string
	Email        string
	Position     string
	PasswordHash string
}

// Validate checks if the Employee has valid data.
// PRE: Employee struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Employee) Validate() error {
	if err := validateName(e.Name); err != nil {
		return err
	}
	if len(e.Email) > MaxEmailLength || !strings.Contains(e.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// SetPassword hashes and stores a password.
// PRE: plaintext is non-empty and >= MinPasswordLength characters
// POST: PasswordHash is set to a bcrypt hash
func (e *Employee) SetPassword(plaintext string) error {
	hash, err := hashPassword(plaintext)
	if err != nil {
		return err
	}
	e.PasswordHash = hash
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// INVARIANT: Employee fields are not mutated
func (e *Employee) CheckPassword(plaintext string) error {
	return checkPassword(e.PasswordHash, plaintext)
}

// Admin is an account with access to the admin panel.
type Admin struct {
	ID           string
	Name         string
	PasswordHash string
}

// Validate checks if the Admin has valid data.
func (a *Admin) Validate() error {
	return validateName(a.Name)
}

// SetPassword hashes and stores a password.
// PRE: plaintext is non-empty and >= MinPasswordLength characters
// POST: PasswordHash is set to a bcrypt hash
func (a *Admin) SetPassword(plaintext string) error {
	hash, err := hashPassword(plaintext)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// INVARIANT: Admin fields are not mutated
func (a *Admin) CheckPassword(plaintext string) error {
	return checkPassword(a.PasswordHash, plaintext)
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func hashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	if len(plaintext) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, plaintext string) error {
	if hash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}
