// Package workingbill holds the in-memory draft a clerk builds before saving
// it to the ledger. A WorkingBill is owned by one session and is not safe for
// concurrent use.
package workingbill

import (
	"strings"

	"github.com/shopspring/decimal"

	"transportbill/models"
)

type WorkingBill struct {
	items     []models.ConsignmentItem
	editIndex *int

	// set while a committed bill is shown read-only
	locked bool
	viewing *models.PresentedBill
}

// State is a point-in-time copy of the draft for display.
type State struct {
	Items         []models.ConsignmentItem `json:"items"`
	EditIndex     *int                     `json:"edit_index"`
	Locked        bool                     `json:"locked"`
	ViewingBillID int64                    `json:"viewing_bill_id,omitempty"`
	BillDate      string                   `json:"bill_date,omitempty"`
	GSTPercent    *decimal.Decimal         `json:"gst_percent,omitempty"`
}

func New() *WorkingBill {
	return &WorkingBill{items: []models.ConsignmentItem{}}
}

// AddOrUpdateItem appends item, or replaces the line at *editIndex in place.
// A con no already used by another line is rejected.
func (w *WorkingBill) AddOrUpdateItem(item models.ConsignmentItem, editIndex *int) error {
	if w.locked {
		return models.ErrDraftLocked
	}
	if err := item.Validate(); err != nil {
		return err
	}
	if editIndex != nil {
		if err := w.checkIndex(*editIndex); err != nil {
			return err
		}
	}
	for i, existing := range w.items {
		if editIndex != nil && i == *editIndex {
			continue
		}
		if existing.ConNo == item.ConNo {
			return &models.DuplicateConNoError{ConNo: item.ConNo, Index: i}
		}
	}

	item.ID, item.BillID = 0, 0
	if editIndex == nil {
		item.Seq = len(w.items)
		w.items = append(w.items, item)
		return nil
	}

	item.Seq = *editIndex
	w.items[*editIndex] = item
	if w.editIndex != nil && *w.editIndex == *editIndex {
		w.editIndex = nil
	}
	return nil
}

// StartEdit marks line i as the pending edit and returns a copy of it.
func (w *WorkingBill) StartEdit(i int) (models.ConsignmentItem, error) {
	if w.locked {
		return models.ConsignmentItem{}, models.ErrDraftLocked
	}
	if err := w.checkIndex(i); err != nil {
		return models.ConsignmentItem{}, err
	}
	w.editIndex = &i
	return w.items[i], nil
}

// CancelEdit drops the pending edit pointer.
func (w *WorkingBill) CancelEdit() {
	w.editIndex = nil
}

// EditIndex returns the pending edit position, if any.
func (w *WorkingBill) EditIndex() (int, bool) {
	if w.editIndex == nil {
		return 0, false
	}
	return *w.editIndex, true
}

// SaveItem adds item, or updates the pending edit line when there is one.
func (w *WorkingBill) SaveItem(item models.ConsignmentItem) error {
	var idx *int
	if w.editIndex != nil {
		i := *w.editIndex
		idx = &i
	}
	return w.AddOrUpdateItem(item, idx)
}

// RemoveItem deletes line index. A pending edit on that line is cleared and
// one on a later line moves up with it.
func (w *WorkingBill) RemoveItem(index int) error {
	if w.locked {
		return models.ErrDraftLocked
	}
	if err := w.checkIndex(index); err != nil {
		return err
	}

	w.items = append(w.items[:index], w.items[index+1:]...)
	for i := index; i < len(w.items); i++ {
		w.items[i].Seq = i
	}

	if w.editIndex != nil {
		switch {
		case *w.editIndex == index:
			w.editIndex = nil
		case *w.editIndex > index:
			shifted := *w.editIndex - 1
			w.editIndex = &shifted
		}
	}
	return nil
}

// Items returns a copy of the current lines in order.
func (w *WorkingBill) Items() []models.ConsignmentItem {
	out := make([]models.ConsignmentItem, len(w.items))
	copy(out, w.items)
	return out
}

func (w *WorkingBill) Len() int { return len(w.items) }

// Locked reports whether a committed bill is loaded read-only.
func (w *WorkingBill) Locked() bool { return w.locked }

// ComputeTotals derives the totals from the current lines. Nothing is cached.
func (w *WorkingBill) ComputeTotals(gstPercent decimal.Decimal) models.Totals {
	return models.ComputeTotals(w.items, gstPercent)
}

// ToCommitSnapshot freezes the draft with its totals for the ledger.
func (w *WorkingBill) ToCommitSnapshot(billDate string, gstPercent decimal.Decimal) (models.BillSnapshot, error) {
	if w.locked {
		return models.BillSnapshot{}, models.ErrDraftLocked
	}
	if err := checkHeader(billDate, gstPercent); err != nil {
		return models.BillSnapshot{}, err
	}
	if len(w.items) == 0 {
		return models.BillSnapshot{}, &models.ValidationError{Field: "items", Reason: "no consignments to save"}
	}

	totals := w.ComputeTotals(gstPercent)
	return models.BillSnapshot{
		BillDate:   strings.TrimSpace(billDate),
		GSTPercent: gstPercent,
		Total:      totals.Total,
		GSTAmount:  totals.GSTAmount,
		GrandTotal: totals.GrandTotal,
		Items:      w.Items(),
	}, nil
}

// Reset returns to a fresh, editable, empty draft.
func (w *WorkingBill) Reset() {
	w.items = []models.ConsignmentItem{}
	w.editIndex = nil
	w.locked = false
	w.viewing = nil
}

// LoadReadOnly replaces the draft with a committed bill and locks it until
// Reset.
func (w *WorkingBill) LoadReadOnly(bill models.PresentedBill) {
	w.Reset()
	w.items = detach(bill.Items)
	w.locked = true
	bill.Items = w.Items()
	w.viewing = &bill
}

// StartFrom replaces the draft with an editable copy of a committed bill's
// lines. Saving it creates a new bill.
func (w *WorkingBill) StartFrom(bill models.PresentedBill) {
	w.Reset()
	w.items = detach(bill.Items)
}

// Preview returns the bill to print: the loaded bill with its stored figures
// when viewing, otherwise the draft with freshly computed totals.
func (w *WorkingBill) Preview(billDate string, gstPercent decimal.Decimal) (*models.Bill, error) {
	if w.viewing != nil {
		return w.viewing.AsBill(), nil
	}
	if err := checkHeader(billDate, gstPercent); err != nil {
		return nil, err
	}
	totals := w.ComputeTotals(gstPercent)
	return &models.Bill{
		BillDate:   billDate,
		GSTPercent: gstPercent,
		Total:      totals.Total,
		GSTAmount:  totals.GSTAmount,
		GrandTotal: totals.GrandTotal,
		Items:      w.Items(),
	}, nil
}

func (w *WorkingBill) State() State {
	s := State{
		Items:  w.Items(),
		Locked: w.locked,
	}
	if w.editIndex != nil {
		i := *w.editIndex
		s.EditIndex = &i
	}
	if w.viewing != nil {
		pct := w.viewing.GSTPercent
		s.ViewingBillID = w.viewing.ID
		s.BillDate = w.viewing.BillDate
		s.GSTPercent = &pct
	}
	return s
}

func (w *WorkingBill) checkIndex(i int) error {
	if i < 0 || i >= len(w.items) {
		return &models.IndexError{Index: i, Len: len(w.items)}
	}
	return nil
}

func checkHeader(billDate string, gstPercent decimal.Decimal) error {
	if strings.TrimSpace(billDate) == "" {
		return &models.ValidationError{Field: "bill_date", Reason: "bill date is required"}
	}
	if gstPercent.IsNegative() {
		return &models.ValidationError{Field: "gst_percent", Reason: "must not be negative"}
	}
	return nil
}

// detach copies committed lines into draft lines, dropping their storage ids.
func detach(items []models.ConsignmentItem) []models.ConsignmentItem {
	out := make([]models.ConsignmentItem, len(items))
	for i, it := range items {
		it.ID, it.BillID, it.Seq = 0, 0, i
		out[i] = it
	}
	return out
}
