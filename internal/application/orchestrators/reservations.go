package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"frontdesk/internal/domain/reservation"
)

// ReservationStore defines the reservation persistence needed here.
type ReservationStore interface {
	Save(ctx context.Context, r reservation.Reservation) error
}

// ReservationSource supplies reservations booked through an external channel.
type ReservationSource interface {
	Fetch(ctx context.Context) ([]reservation.Reservation, error)
}

// SampleReservationSource stands in for an external booking channel.
// It yields two bookings for the current day.
type SampleReservationSource struct {
	Now func() time.Time
}

// Fetch returns the sample bookings.
func (s SampleReservationSource) Fetch(context.Context) ([]reservation.Reservation, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	y, m, d := now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return []reservation.Reservation{
		{CustomerName: "Customer A", Date: today, Status: reservation.StatusBooked},
		{CustomerName: "Customer B", Date: today, Status: reservation.StatusBooked},
	}, nil
}

// reservationDateLayouts are the accepted forms of reservation_date.
var reservationDateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseReservationDate accepts a date, a datetime-local value, or RFC 3339.
func ParseReservationDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range reservationDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("reservation_date %q: %w", value, reservation.ErrMissingDate)
}

// CreateReservationInput carries the booking fields.
type CreateReservationInput struct {
	CustomerName    string
	ReservationDate string
}

// ExecuteCreateReservation books a visit.
// PRE: none
// POST: reservation saved with status "booked" and source "manual"
func ExecuteCreateReservation(ctx context.Context, input CreateReservationInput, store ReservationStore) (reservation.Reservation, error) {
	date, err := ParseReservationDate(input.ReservationDate)
	if err != nil {
		return reservation.Reservation{}, invalid(err)
	}
	r := reservation.Reservation{
		ID:           uuid.New().String(),
		CustomerName: strings.TrimSpace(input.CustomerName),
		Date:         date,
	}
	r.ApplyDefaults()
	if err := r.Validate(); err != nil {
		return reservation.Reservation{}, invalid(err)
	}
	if err := store.Save(ctx, r); err != nil {
		return reservation.Reservation{}, err
	}
	return r, nil
}

// SyncReservationsResult reports how many bookings were imported.
type SyncReservationsResult struct {
	Added int
}

// Detail is the Markdown status message shown to the operator.
func (r SyncReservationsResult) Detail() string {
	return fmt.Sprintf("Reservation sync complete: **%d** added", r.Added)
}

// ExecuteSyncReservations copies every booking from source into the store.
// PRE: none
// POST: each fetched booking is saved with source "sync"; stops at the first failure
func ExecuteSyncReservations(ctx context.Context, source ReservationSource, store ReservationStore) (SyncReservationsResult, error) {
	fetched, err := source.Fetch(ctx)
	if err != nil {
		return SyncReservationsResult{}, fmt.Errorf("fetch reservations: %w", err)
	}
	var res SyncReservationsResult
	for _, r := range fetched {
		r.ID = uuid.New().String()
		r.Source = reservation.SourceSync
		r.ApplyDefaults()
		if err := r.Validate(); err != nil {
			return res, invalid(err)
		}
		if err := store.Save(ctx, r); err != nil {
			return res, err
		}
		res.Added++
	}
	slog.Info("reservation_event", "event", "sync", "added", res.Added)
	return res, nil
}
