package models

import "github.com/shopspring/decimal"

// PresentedBill is a read-only view of a committed bill. It holds copies of
// the stored values, so changing it never reaches the ledger.
type PresentedBill struct {
	ID         int64             `json:"id"`
	BillDate   string            `json:"bill_date"`
	GSTPercent decimal.Decimal   `json:"gst_percent"`
	GSTAmount  decimal.Decimal   `json:"gst_amount"`
	Total      decimal.Decimal   `json:"total"`
	GrandTotal decimal.Decimal   `json:"grand_total"`
	ItemCount  int               `json:"item_count"`
	Items      []ConsignmentItem `json:"items"`
}

// Present copies b into its read-only presentation form.
func Present(b *Bill) PresentedBill {
	items := make([]ConsignmentItem, len(b.Items))
	copy(items, b.Items)
	return PresentedBill{
		ID:         b.ID,
		BillDate:   b.BillDate,
		GSTPercent: b.GSTPercent,
		GSTAmount:  b.GSTAmount,
		Total:      b.Total,
		GrandTotal: b.GrandTotal,
		ItemCount:  len(items),
		Items:      items,
	}
}

// AsBill returns a detached Bill carrying the stored figures, for printing.
func (p PresentedBill) AsBill() *Bill {
	items := make([]ConsignmentItem, len(p.Items))
	copy(items, p.Items)
	return &Bill{
		ID:         p.ID,
		BillDate:   p.BillDate,
		GSTPercent: p.GSTPercent,
		GSTAmount:  p.GSTAmount,
		Total:      p.Total,
		GrandTotal: p.GrandTotal,
		Items:      items,
	}
}
