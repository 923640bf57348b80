package sale

import (
	"context"

	domain "frontdesk/internal/domain/sale"
)

// Store persists sales.
type Store interface {
	Save(ctx context.Context, value domain.Sale) error
	List(ctx context.Context, filter ListFilter) ([]domain.Sale, error)
	Total(ctx context.Context) (float64, error)
}

// ListFilter windows a List call.
type ListFilter struct {
	Limit  int
	Offset int
}
