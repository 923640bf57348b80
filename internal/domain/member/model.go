package member

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength  = 100
	MaxEmailLength = 254
	DateLayout     = "2006-01-02"
)

// Domain errors
var (
	ErrEmptyName       = errors.New("member name cannot be empty")
	ErrNameTooLong     = errors.New("member name cannot exceed 100 characters")
	ErrInvalidEmail    = errors.New("member email must be valid")
	ErrEmptyMembership = errors.New("membership type cannot be empty")
	ErrInvalidDate     = errors.New("dates must be YYYY-MM-DD")
	ErrEndBeforeStart  = errors.New("end date cannot be before start date")
)

// Member is a customer with a membership period.
type Member struct {
	ID             string
	Name           string
	Email          string
	MembershipType string
	StartDate      string // YYYY-MM-DD
	EndDate        string // YYYY-MM-DD
}

// Validate checks if the Member has valid data.
// PRE: Member struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Email must contain '@', Name must not be empty, StartDate <= EndDate
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if len(m.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if len(m.Email) > MaxEmailLength || !strings.Contains(m.Email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(m.MembershipType) == "" {
		return ErrEmptyMembership
	}
	start, err := time.Parse(DateLayout, m.StartDate)
	if err != nil {
		return ErrInvalidDate
	}
	end, err := time.Parse(DateLayout, m.EndDate)
	if err != nil {
		return ErrInvalidDate
	}
	if end.Before(start) {
		return ErrEndBeforeStart
	}
	return nil
}

// IsActiveOn returns true if day falls within the membership period.
// INVARIANT: Member fields are not mutated
func (m *Member) IsActiveOn(day time.Time) bool {
	d := day.Format(DateLayout)
	return m.StartDate <= d && d <= m.EndDate
}
