package reservation

import (
	"errors"
	"strings"
	"time"
)

// Status constants
const (
	StatusBooked    = "booked"
	StatusCancelled = "cancelled"
)

// Source constants
const (
	SourceManual = "manual"
	SourceSync   = "sync"
)

// Domain errors
var (
	ErrEmptyCustomer = errors.New("customer name cannot be empty")
	ErrMissingDate   = errors.New("reservation date must be set")
	ErrInvalidStatus = errors.New("status must be 'booked' or 'cancelled'")
)

// Reservation is a booked visit.
type Reservation struct {
	ID           string
	CustomerName string
	Date         time.Time
	Status       string
	Source       string
}

// Validate checks if the Reservation has valid data.
// PRE: Reservation struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (r *Reservation) Validate() error {
	if strings.TrimSpace(r.CustomerName) == "" {
		return ErrEmptyCustomer
	}
	if r.Date.IsZero() {
		return ErrMissingDate
	}
	if r.Status != StatusBooked && r.Status != StatusCancelled {
		return ErrInvalidStatus
	}
	return nil
}

// ApplyDefaults fills an empty status and source.
func (r *Reservation) ApplyDefaults() {
	if r.Status == "" {
		r.Status = StatusBooked
	}
	if r.Source == "" {
		r.Source = SourceManual
	}
}
