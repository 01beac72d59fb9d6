package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"invotrack/internal/domain/client"
	"invotrack/internal/domain/invoice"
	"invotrack/internal/domain/tracker"

	"github.com/go-chi/chi/v5"
)

// InvoiceHandler serves the per-cell write endpoints. Months in the URL are
// zero-indexed, matching the stored cell model.
type InvoiceHandler struct {
	svc *tracker.Service
}

func NewInvoiceHandler(svc *tracker.Service) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type setNotesRequest struct {
	Notes string `json:"notes"`
}

// SetStatus records a status for one (client, year, month) cell.
func (h *InvoiceHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	clientID, year, month, ok := cellParams(w, r)
	if !ok {
		return
	}

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	status, err := invoice.ParseStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cell, err := h.svc.SetInvoiceStatus(r.Context(), clientID, year, month, status)
	if err != nil {
		writeCellError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cell)
}

// SetNotes records notes for one cell without touching its status.
func (h *InvoiceHandler) SetNotes(w http.ResponseWriter, r *http.Request) {
	clientID, year, month, ok := cellParams(w, r)
	if !ok {
		return
	}

	var req setNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	cell, err := h.svc.SetInvoiceNotes(r.Context(), clientID, year, month, req.Notes)
	if err != nil {
		writeCellError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cell)
}

func cellParams(w http.ResponseWriter, r *http.Request) (clientID string, year, month int, ok bool) {
	clientID = chi.URLParam(r, "client_id")
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year")
		return "", 0, 0, false
	}
	month, err = strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month")
		return "", 0, 0, false
	}
	return clientID, year, month, true
}

func writeCellError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, client.ErrClientNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, invoice.ErrInvalidStatus),
		errors.Is(err, invoice.ErrInvalidMonth):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
