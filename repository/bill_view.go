package repository

import (
	"context"
	"fmt"

	"transportbill/models"
)

// BillViewRepository rebuilds committed bills for viewing and printing.
// It only reads from the ledger.
type BillViewRepository struct {
	Ledger BillLedger
}

func NewBillViewRepository(ledger BillLedger) *BillViewRepository {
	return &BillViewRepository{Ledger: ledger}
}

// LoadForViewing returns the bills of one date, in commit order, as
// detached presentation copies.
func (r *BillViewRepository) LoadForViewing(ctx context.Context, date string) ([]models.PresentedBill, error) {
	bills, err := r.Ledger.FindBillsByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	out := make([]models.PresentedBill, len(bills))
	for i, b := range bills {
		out[i] = models.Present(b)
	}
	return out, nil
}

// GetBillForPrint picks one bill out of a date's bills.
func (r *BillViewRepository) GetBillForPrint(ctx context.Context, date string, id int64) (*models.PresentedBill, error) {
	bills, err := r.LoadForViewing(ctx, date)
	if err != nil {
		return nil, err
	}
	for i := range bills {
		if bills[i].ID == id {
			return &bills[i], nil
		}
	}
	return nil, &models.NotFoundError{What: fmt.Sprintf("bill %d on %s", id, date)}
}
