package attendance

import (
	"context"

	domain "frontdesk/internal/domain/attendance"
)

// Store persists attendance records.
type Store interface {
	Save(ctx context.Context, value domain.Record) error
	GetByID(ctx context.Context, id string) (domain.Record, error)
	LatestOpenByEmployee(ctx context.Context, employeeName string) (domain.Record, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Record, error)
	ListClosed(ctx context.Context) ([]domain.Record, error)
}

// ListFilter windows a List call.
type ListFilter struct {
	Limit  int
	Offset int
}
