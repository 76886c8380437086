package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"transportbill/models"
	"transportbill/repository"
	"transportbill/workingbill"
)

// DraftHandler exposes the server's single working bill. Every read or
// change of Draft happens under mu; request decoding, ledger lookups for
// Load and Copy, and print rendering run outside it.
type DraftHandler struct {
	mu      sync.Mutex
	Draft   *workingbill.WorkingBill
	Ledger  repository.BillLedger
	Viewer  *repository.BillViewRepository
	Printer *PrintHandler
}

type commitRequest struct {
	BillDate   string `json:"bill_date"`
	GSTPercent string `json:"gst_percent"`
}

type loadRequest struct {
	Date string `json:"date"`
	ID   int64  `json:"id"`
}

func parseGSTPercent(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &models.ValidationError{Field: "gst_percent", Reason: strconv.Quote(s) + " is not a number"}
	}
	if d.IsNegative() {
		return decimal.Zero, &models.ValidationError{Field: "gst_percent", Reason: "must not be negative"}
	}
	return d, nil
}

func indexParam(r *http.Request) (int, error) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return 0, &models.ValidationError{Field: "index", Reason: "invalid item index"}
	}
	return i, nil
}

func (h *DraftHandler) state() workingbill.State {
	return h.Draft.State()
}

// GetDraft handles GET /draft
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	writeOK(w, http.StatusOK, "", h.state())
}

// SaveItem handles POST /draft/items. It adds a line, or updates the line
// picked with StartEdit.
func (h *DraftHandler) SaveItem(w http.ResponseWriter, r *http.Request) {
	var in models.ConsignmentInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	item, err := in.ToItem()
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.Draft.SaveItem(item); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "consignment saved", h.state())
}

// UpdateItem handles PUT /draft/items/{index}
func (h *DraftHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	index, err := indexParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in models.ConsignmentInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	item, err := in.ToItem()
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.Draft.AddOrUpdateItem(item, &index); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "consignment updated", h.state())
}

// RemoveItem handles DELETE /draft/items/{index}
func (h *DraftHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	index, err := indexParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.Draft.RemoveItem(index); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "consignment removed", h.state())
}

// StartEdit handles POST /draft/items/{index}/edit
func (h *DraftHandler) StartEdit(w http.ResponseWriter, r *http.Request) {
	index, err := indexParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	item, err := h.Draft.StartEdit(index)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "", item)
}

// Totals handles GET /draft/totals?gst_percent=
func (h *DraftHandler) Totals(w http.ResponseWriter, r *http.Request) {
	gst, err := parseGSTPercent(r.URL.Query().Get("gst_percent"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	writeOK(w, http.StatusOK, "", h.Draft.ComputeTotals(gst))
}

// Reset handles POST /draft/reset
func (h *DraftHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Draft.Reset()
	writeOK(w, http.StatusOK, "new bill started", h.state())
}

func (h *DraftHandler) findBill(r *http.Request) (*models.PresentedBill, error) {
	var req loadRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	return h.Viewer.GetBillForPrint(r.Context(), req.Date, req.ID)
}

// Load handles POST /draft/load: shows a committed bill read-only.
func (h *DraftHandler) Load(w http.ResponseWriter, r *http.Request) {
	bill, err := h.findBill(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.Draft.LoadReadOnly(*bill)
	writeOK(w, http.StatusOK, "viewing bill "+strconv.FormatInt(bill.ID, 10), h.state())
}

// Copy handles POST /draft/copy: starts a new editable bill from a committed one.
func (h *DraftHandler) Copy(w http.ResponseWriter, r *http.Request) {
	bill, err := h.findBill(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.Draft.StartFrom(*bill)
	writeOK(w, http.StatusOK, "new bill started from bill "+strconv.FormatInt(bill.ID, 10), h.state())
}

// Commit handles POST /draft/commit. The draft is reset once the ledger
// has the bill.
func (h *DraftHandler) Commit(w http.ResponseWriter, r *http.Request) {
	var req commitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	gst, err := parseGSTPercent(req.GSTPercent)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	snap, err := h.Draft.ToCommitSnapshot(req.BillDate, gst)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := h.Ledger.CommitBill(r.Context(), snap)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.Draft.Reset()

	writeOK(w, http.StatusCreated, "bill saved", map[string]any{
		"id":          id,
		"bill_date":   snap.BillDate,
		"total":       snap.Total,
		"gst_amount":  snap.GSTAmount,
		"grand_total": snap.GrandTotal,
		"items":       len(snap.Items),
	})
}

// Print handles GET /draft/print?bill_date=&gst_percent=&format=
func (h *DraftHandler) Print(w http.ResponseWriter, r *http.Request) {
	gst, err := parseGSTPercent(r.URL.Query().Get("gst_percent"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.mu.Lock()
	bill, err := h.Draft.Preview(r.URL.Query().Get("bill_date"), gst)
	h.mu.Unlock()
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.Printer.writeBill(w, r, bill)
}
