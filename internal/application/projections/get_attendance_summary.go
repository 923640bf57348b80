package projections

import (
	"context"
	"math"

	"frontdesk/internal/domain/summary"
)

// QueryAttendanceSummary aggregates every closed shift into daily and monthly hours.
// PRE: none
// POST: Daily and Monthly are non-nil; open shifts are excluded
func QueryAttendanceSummary(ctx context.Context, store AttendanceStore) (summary.Summary, error) {
	closed, err := store.ListClosed(ctx)
	if err != nil {
		return summary.Summary{}, err
	}
	return summary.Build(closed), nil
}

// QuerySalesTotal returns the sum of all recorded sales, rounded to cents.
func QuerySalesTotal(ctx context.Context, store SaleStore) (float64, error) {
	total, err := store.Total(ctx)
	if err != nil {
		return 0, err
	}
	return math.Round(total*100) / 100, nil
}
