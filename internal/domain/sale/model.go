package sale

import (
	"errors"
	"math"
	"time"
)

// Domain errors
var (
	ErrMissingDate    = errors.New("sale date must be set")
	ErrInvalidAmount  = errors.New("amount must be a finite number")
	ErrNegativeAmount = errors.New("amount cannot be negative")
)

// Sale is one recorded takings entry.
type Sale struct {
	ID     string
	Date   time.Time
	Amount float64
}

// Validate checks if the Sale has valid data.
// PRE: Sale struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (s *Sale) Validate() error {
	if s.Date.IsZero() {
		return ErrMissingDate
	}
	if math.IsNaN(s.Amount) || math.IsInf(s.Amount, 0) {
		return ErrInvalidAmount
	}
	if s.Amount < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// Total sums the amounts of sales.
func Total(sales []Sale) float64 {
	var total float64
	for _, s := range sales {
		total += s.Amount
	}
	return total
}
