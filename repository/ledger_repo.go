package repository

import (
	"context"

	"transportbill/models"
)

// BillLedger is the durable record of committed bills.
type BillLedger interface {
	// CommitBill writes the bill header and all items as one unit and
	// returns the new bill id.
	CommitBill(ctx context.Context, snap models.BillSnapshot) (int64, error)
	// FindBillsByDate returns every bill for date, items loaded, oldest first.
	FindBillsByDate(ctx context.Context, date string) ([]*models.Bill, error)
	// CountConsignments returns the number of items ever committed.
	CountConsignments(ctx context.Context) (int, error)
}

// NextConNo suggests the next consignment number. It is a hint only; the
// ledger never enforces it.
func NextConNo(ctx context.Context, ledger BillLedger) (int, error) {
	n, err := ledger.CountConsignments(ctx)
	if err != nil {
		return 0, err
	}
	return n + 1, nil
}
