package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"transportbill/models"
	"transportbill/repository"
	"transportbill/utils"
)

type PrintHandler struct {
	Viewer   *repository.BillViewRepository
	Issuer   models.Issuer
	Copies   []string
	SavePath string

	// GeneratePDF defaults to headless Chrome.
	GeneratePDF func(ctx context.Context, html string) ([]byte, error)
}

// PrintBill handles GET /bills/{id}/print?date=YYYY-MM-DD&format=html|pdf
func (h *PrintHandler) PrintBill(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, &models.ValidationError{Field: "id", Reason: "invalid bill id"})
		return
	}

	bill, err := h.Viewer.GetBillForPrint(r.Context(), r.URL.Query().Get("date"), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.writeBill(w, r, bill.AsBill())
}

// writeBill renders bill as HTML, or as a PDF that is also saved under
// SavePath when format=pdf.
func (h *PrintHandler) writeBill(w http.ResponseWriter, r *http.Request, bill *models.Bill) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format != "" && format != "html" && format != "pdf" {
		writeError(w, r, &models.ValidationError{Field: "format", Reason: "format must be html or pdf"})
		return
	}

	doc := utils.BuildPrintable(bill, h.Issuer)
	html, err := utils.RenderBillHTML(doc, h.Copies)
	if err != nil {
		writeError(w, r, fmt.Errorf("rendering bill: %w", err))
		return
	}

	if format != "pdf" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(html))
		return
	}

	generate := h.GeneratePDF
	if generate == nil {
		generate = utils.GenerateBillPDF
	}
	pdf, err := generate(r.Context(), html)
	if err != nil {
		writeError(w, r, fmt.Errorf("failed to generate PDF: %w", err))
		return
	}

	billNo := doc.BillNo
	if bill.ID == 0 {
		billNo = "draft"
	}
	saveDir := h.SavePath
	if saveDir == "" {
		saveDir = "./pdfs"
	}
	path, err := utils.SavePDF(saveDir, billNo, pdf)
	if err != nil {
		writeError(w, r, fmt.Errorf("failed to save PDF: %w", err))
		return
	}
	slog.Info("bill pdf saved", "bill_id", bill.ID, "file", path)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filepath.Base(path)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
