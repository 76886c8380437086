package handlers

import (
	"net/http"

	"transportbill/repository"
)

type BillHandler struct {
	Ledger repository.BillLedger
	Viewer *repository.BillViewRepository
}

// GetBillsByDate handles GET /bills?date=YYYY-MM-DD
func (h *BillHandler) GetBillsByDate(w http.ResponseWriter, r *http.Request) {
	bills, err := h.Viewer.LoadForViewing(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "", bills)
}

// NextConNo handles GET /bills/next-con-no. The number is only a hint for
// the entry form.
func (h *BillHandler) NextConNo(w http.ResponseWriter, r *http.Request) {
	next, err := repository.NextConNo(r.Context(), h.Ledger)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "", map[string]int{"next_con_no": next})
}
