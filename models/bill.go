package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is a committed bill header with its ordered consignment items.
// Totals are stored as computed at commit time and never recomputed on read.
type Bill struct {
	ID         int64             `json:"id" db:"id"`
	BillDate   string            `json:"bill_date" db:"bill_date"`
	GSTPercent decimal.Decimal   `json:"gst_percent" db:"gst_percent"`
	GSTAmount  decimal.Decimal   `json:"gst_amount" db:"gst_amount"`
	Total      decimal.Decimal   `json:"total" db:"total"`
	GrandTotal decimal.Decimal   `json:"grand_total" db:"grand_total"`
	CreatedAt  time.Time         `json:"created_at" db:"created_at"`
	Items      []ConsignmentItem `json:"items"`
}

// Totals holds the derived money figures of a bill.
type Totals struct {
	Total      decimal.Decimal `json:"total"`
	GSTAmount  decimal.Decimal `json:"gst_amount"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// ComputeTotals sums item amounts and applies gstPercent to the sum.
// The GST amount is kept to two decimal places, as printed and stored.
func ComputeTotals(items []ConsignmentItem, gstPercent decimal.Decimal) Totals {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	gst := total.Mul(gstPercent).Div(decimal.NewFromInt(100)).Round(2)
	return Totals{
		Total:      total,
		GSTAmount:  gst,
		GrandTotal: total.Add(gst),
	}
}

// BillSnapshot is the frozen content of a working bill handed to the ledger.
type BillSnapshot struct {
	BillDate   string            `json:"bill_date" validate:"required,datetime=2006-01-02"`
	GSTPercent decimal.Decimal   `json:"gst_percent" validate:"gte=0"`
	Total      decimal.Decimal   `json:"total" validate:"gte=0"`
	GSTAmount  decimal.Decimal   `json:"gst_amount" validate:"gte=0"`
	GrandTotal decimal.Decimal   `json:"grand_total" validate:"gte=0"`
	Items      []ConsignmentItem `json:"items" validate:"required,min=1,dive"`
}

// Validate checks the snapshot before any write is attempted.
func (s *BillSnapshot) Validate() error {
	s.BillDate = trim(s.BillDate)
	if s.BillDate == "" {
		return &ValidationError{Field: "bill_date", Reason: "bill date is required"}
	}
	if len(s.Items) == 0 {
		return &ValidationError{Field: "items", Reason: "no consignments to save"}
	}
	for i := range s.Items {
		s.Items[i].Normalize()
	}
	if err := validateStruct(s); err != nil {
		return err
	}
	seen := make(map[string]int, len(s.Items))
	for i, it := range s.Items {
		if first, ok := seen[it.ConNo]; ok {
			return &DuplicateConNoError{ConNo: it.ConNo, Index: first}
		}
		seen[it.ConNo] = i
	}
	return nil
}

// Header returns the bill header the snapshot commits to.
func (s *BillSnapshot) Header() Bill {
	return Bill{
		BillDate:   s.BillDate,
		GSTPercent: s.GSTPercent,
		GSTAmount:  s.GSTAmount,
		Total:      s.Total,
		GrandTotal: s.GrandTotal,
	}
}

// ItemDate returns the stored date of an item: its own date, or the bill date.
func (s *BillSnapshot) ItemDate(item ConsignmentItem) string {
	if item.Date != "" {
		return item.Date
	}
	return s.BillDate
}
