// Package api exposes the tracker's operations over HTTP for a web UI.
package api

import (
	"log/slog"
	"net/http"

	"invotrack/internal/auth"
	"invotrack/internal/domain/tracker"
	"invotrack/internal/metrics"
	"invotrack/internal/notify"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServer creates an HTTP server with all routes configured.
func NewServer(logger *slog.Logger, svc *tracker.Service, authn auth.Authenticator, notifications *notify.Buffer) http.Handler {
	mux := chi.NewRouter()

	mux.Use(RequestID)
	mux.Use(Logging(logger))
	mux.Use(Recovery(logger))
	mux.Use(metrics.Middleware)

	clientHandler := NewClientHandler(svc)
	invoiceHandler := NewInvoiceHandler(svc)
	gridHandler := NewGridHandler(svc)
	authHandler := NewAuthHandler(authn, svc)

	mux.Route("/v1", func(r chi.Router) {
		// Client CRUD
		r.Get("/clients", clientHandler.List)
		r.Post("/clients", clientHandler.Create)
		r.Put("/clients/{client_id}", clientHandler.Update)
		r.Delete("/clients/{client_id}", clientHandler.Delete)

		// Invoice cell writes
		r.Put("/invoices/{client_id}/{year}/{month}/status", invoiceHandler.SetStatus)
		r.Put("/invoices/{client_id}/{year}/{month}/notes", invoiceHandler.SetNotes)

		// Read projections
		r.Get("/grid", gridHandler.Grid)
		r.Get("/statuses", gridHandler.Statuses)
		r.Get("/snapshot", gridHandler.Snapshot)

		// Auth
		r.Post("/auth/signin", authHandler.SignIn)
		r.Post("/auth/signup", authHandler.SignUp)
		r.Post("/auth/signout", authHandler.SignOut)
		r.Get("/auth/session", authHandler.Session)

		// Pending notifications, consumed on read
		r.Get("/notifications", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, notifications.Drain())
		})

		// Health
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	mux.Handle("/metrics", promhttp.Handler())

	return mux
}
