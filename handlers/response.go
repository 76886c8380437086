package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"transportbill/models"
)

// ApiResponse is the JSON envelope of every endpoint.
type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp ApiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeOK(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, ApiResponse{Success: true, Message: message, Data: data})
}

// writeError maps err to its status code and writes the failure envelope.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, ApiResponse{Success: false, Message: err.Error()})
}

func statusFor(err error) int {
	var (
		verr *models.ValidationError
		dup  *models.DuplicateConNoError
		ierr *models.IndexError
		nf   *models.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.As(err, &dup):
		return http.StatusConflict
	case errors.As(err, &ierr), errors.As(err, &nf):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDraftLocked):
		return http.StatusLocked
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &models.ValidationError{Field: "body", Reason: "invalid request payload: " + err.Error()}
	}
	return nil
}
