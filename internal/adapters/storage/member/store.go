package member

import (
	"context"

	domain "frontdesk/internal/domain/member"
)

// Store persists members.
type Store interface {
	Save(ctx context.Context, value domain.Member) error
	GetByEmail(ctx context.Context, email string) (domain.Member, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Member, error)
}

// ListFilter windows a List call.
type ListFilter struct {
	Limit  int
	Offset int
}
