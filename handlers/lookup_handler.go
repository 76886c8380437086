package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"transportbill/models"
	"transportbill/repository"
)

type LookupHandler struct {
	Repo repository.LookupStore
}

type addLookupRequest struct {
	Name string `json:"name"`
}

// ListValues handles GET /lookups/{category}
func (h *LookupHandler) ListValues(w http.ResponseWriter, r *http.Request) {
	category := models.LookupCategory(chi.URLParam(r, "category"))
	names, err := h.Repo.ListValues(r.Context(), category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "", names)
}

// AddValue handles POST /lookups/{category}
func (h *LookupHandler) AddValue(w http.ResponseWriter, r *http.Request) {
	var req addLookupRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	category := models.LookupCategory(chi.URLParam(r, "category"))
	if err := h.Repo.AddValue(r.Context(), category, req.Name); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, string(category)+" saved", nil)
}
