package orchestrators

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"frontdesk/internal/domain/sale"
)

// SaleStore defines the sale persistence needed by RecordSale.
type SaleStore interface {
	Save(ctx context.Context, s sale.Sale) error
}

// RecordSaleInput carries a sale. SaleDate is YYYY-MM-DD.
type RecordSaleInput struct {
	SaleDate string
	Amount   float64
}

// ExecuteRecordSale stores one takings entry.
// PRE: none
// POST: sale saved with a new ID
func ExecuteRecordSale(ctx context.Context, input RecordSaleInput, store SaleStore) (sale.Sale, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(input.SaleDate))
	if err != nil {
		return sale.Sale{}, invalid(sale.ErrMissingDate)
	}
	s := sale.Sale{ID: uuid.New().String(), Date: date, Amount: input.Amount}
	if err := s.Validate(); err != nil {
		return sale.Sale{}, invalid(err)
	}
	if err := store.Save(ctx, s); err != nil {
		return sale.Sale{}, err
	}
	return s, nil
}
