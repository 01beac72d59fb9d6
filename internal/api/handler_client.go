package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"invotrack/internal/domain/client"
	"invotrack/internal/domain/tracker"

	"github.com/go-chi/chi/v5"
)

// ClientHandler serves the client CRUD endpoints.
type ClientHandler struct {
	svc *tracker.Service
}

func NewClientHandler(svc *tracker.Service) *ClientHandler {
	return &ClientHandler{svc: svc}
}

type clientRequest struct {
	Name         string `json:"name"`
	Frequency    string `json:"frequency"`
	Instructions string `json:"instructions"`
}

// List returns every client in snapshot order.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Snapshot().Clients)
}

// Create adds a new client.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	freq, err := client.ParseFrequency(req.Frequency)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.svc.AddClient(r.Context(), tracker.AddClientRequest{
		Name:         req.Name,
		Frequency:    freq,
		Instructions: req.Instructions,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update replaces a client record in full. An unknown id yields 404; the
// domain treats it as a no-op so nothing is created.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "client_id")

	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	freq, err := client.ParseFrequency(req.Frequency)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.svc.UpdateClient(r.Context(), tracker.UpdateClientRequest{
		ID:           id,
		Name:         req.Name,
		Frequency:    freq,
		Instructions: req.Instructions,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if updated.ID == "" {
		writeError(w, http.StatusNotFound, "client not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a client and its invoice cells.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "client_id")
	if err := h.svc.RemoveClient(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeDomainError maps domain sentinels to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, client.ErrClientNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, client.ErrEmptyName),
		errors.Is(err, client.ErrInvalidFrequency):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
