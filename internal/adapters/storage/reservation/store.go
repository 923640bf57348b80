package reservation

import (
	"context"

	domain "frontdesk/internal/domain/reservation"
)

// Store persists reservations.
type Store interface {
	Save(ctx context.Context, value domain.Reservation) error
	List(ctx context.Context, filter ListFilter) ([]domain.Reservation, error)
}

// ListFilter windows a List call.
type ListFilter struct {
	Limit  int
	Offset int
}
