package api

import (
	"net/http"
	"strconv"
	"time"

	"invotrack/internal/domain/invoice"
	"invotrack/internal/domain/tracker"
)

// GridHandler serves the read projections.
type GridHandler struct {
	svc *tracker.Service
}

func NewGridHandler(svc *tracker.Service) *GridHandler {
	return &GridHandler{svc: svc}
}

// Grid returns the month-window projection. Query parameters: year and month
// (zero-indexed) pick the center, defaulting to the current month; past and
// future size the window.
func (h *GridHandler) Grid(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	center := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	q := r.URL.Query()
	if q.Get("year") != "" || q.Get("month") != "" {
		year, err := strconv.Atoi(q.Get("year"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		month, err := strconv.Atoi(q.Get("month"))
		if err != nil || month < 0 || month > 11 {
			writeError(w, http.StatusBadRequest, "invalid month")
			return
		}
		center = time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	}

	past := queryInt(q.Get("past"), -1)
	future := queryInt(q.Get("future"), -1)

	writeJSON(w, http.StatusOK, h.svc.Grid(center, past, future))
}

// Statuses returns the display metadata for every status.
func (h *GridHandler) Statuses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, invoice.StatusCatalog())
}

// Snapshot returns the full application state, matching the persisted format.
func (h *GridHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Snapshot())
}

func queryInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
