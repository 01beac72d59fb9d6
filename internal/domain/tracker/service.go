// Package tracker implements the state controller: it owns the canonical
// in-memory snapshot, applies every mutation, persists locally before
// returning, and mirrors changes to the remote backend without blocking the
// caller.
package tracker

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"invotrack/internal/auth"
	"invotrack/internal/domain/client"
	"invotrack/internal/domain/invoice"
	"invotrack/internal/domain/snapshot"
	"invotrack/internal/metrics"
	"invotrack/internal/repository"

	"github.com/google/uuid"
)

// remoteTimeout bounds each detached remote operation.
const remoteTimeout = 10 * time.Second

// Notifier receives one transient message per remote failure.
type Notifier interface {
	Notify(message string)
}

// SyncState is the remote sync lifecycle position.
type SyncState string

const (
	SyncUnauthenticated SyncState = "unauthenticated"
	SyncAuthenticating  SyncState = "authenticating"
	SyncSnapshotLoaded  SyncState = "snapshot_loaded"
	SyncLocalFallback   SyncState = "local_fallback"
)

// AddClientRequest carries the fields for creating a client.
type AddClientRequest struct {
	Name         string
	Frequency    client.Frequency
	Instructions string
}

// UpdateClientRequest carries a full-record client replacement.
type UpdateClientRequest struct {
	ID           string
	Name         string
	Frequency    client.Frequency
	Instructions string
}

// Service is the state controller. All reads and mutations go through it; the
// snapshot behind the mutex is the single source of truth.
type Service struct {
	store    repository.SnapshotStore
	mirror   repository.RemoteMirror
	notifier Notifier
	logger   *slog.Logger

	mu         sync.Mutex
	snap       *snapshot.Snapshot
	owner      string
	state      SyncState
	generation uint64

	wg sync.WaitGroup
}

// NewService creates a controller over the given store. mirror and notifier
// may be nil; remote sync stays off until a session arrives via HandleSession.
func NewService(store repository.SnapshotStore, mirror repository.RemoteMirror, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		mirror:   mirror,
		notifier: notifier,
		logger:   logger,
		snap:     snapshot.Default(),
		state:    SyncUnauthenticated,
	}
}

// LoadLocal hydrates the in-memory snapshot from the local store. Called once
// at startup, before any transport accepts requests.
func (s *Service) LoadLocal(ctx context.Context) error {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	s.logger.Info("local snapshot loaded",
		"clients", len(snap.Clients), "cells", len(snap.Invoices))
	return nil
}

// Snapshot returns a deep copy of the current state.
func (s *Service) Snapshot() *snapshot.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// State returns the current sync lifecycle state and owner id.
func (s *Service) State() (SyncState, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.owner
}

// AddClient validates and appends a new client, persists the snapshot, and
// mirrors the record remotely when a session is live.
func (s *Service) AddClient(ctx context.Context, req AddClientRequest) (client.Client, error) {
	now := time.Now().UTC()
	c := client.Client{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Frequency:    req.Frequency,
		Instructions: req.Instructions,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := client.Validate(c); err != nil {
		return client.Client{}, err
	}

	s.mu.Lock()
	s.snap.Clients = append(s.snap.Clients, c)
	s.saveLocked(ctx)
	s.mu.Unlock()

	s.pushRemote("upsert_client", func(ctx context.Context, owner string) error {
		return s.mirror.UpsertClient(ctx, owner, c)
	})
	return c, nil
}

// UpdateClient replaces the stored record for req.ID in full, refreshing
// updatedAt. An unknown id is a no-op: nothing is created and no error is
// returned.
func (s *Service) UpdateClient(ctx context.Context, req UpdateClientRequest) (client.Client, error) {
	c := client.Client{
		ID:           req.ID,
		Name:         strings.TrimSpace(req.Name),
		Frequency:    req.Frequency,
		Instructions: req.Instructions,
		UpdatedAt:    time.Now().UTC(),
	}
	if err := client.Validate(c); err != nil {
		return client.Client{}, err
	}

	s.mu.Lock()
	idx := s.snap.FindClient(req.ID)
	if idx < 0 {
		s.mu.Unlock()
		return client.Client{}, nil
	}
	c.CreatedAt = s.snap.Clients[idx].CreatedAt
	s.snap.Clients[idx] = c
	s.saveLocked(ctx)
	s.mu.Unlock()

	s.pushRemote("upsert_client", func(ctx context.Context, owner string) error {
		return s.mirror.UpsertClient(ctx, owner, c)
	})
	return c, nil
}

// RemoveClient deletes a client and every invoice cell keyed to it. Removing
// an unknown id is a no-op.
func (s *Service) RemoveClient(ctx context.Context, clientID string) error {
	s.mu.Lock()
	idx := s.snap.FindClient(clientID)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	s.snap.Clients = append(s.snap.Clients[:idx], s.snap.Clients[idx+1:]...)
	prefix := invoice.KeyPrefix(clientID)
	for key := range s.snap.Invoices {
		if strings.HasPrefix(key, prefix) {
			delete(s.snap.Invoices, key)
		}
	}
	s.saveLocked(ctx)
	s.mu.Unlock()

	// The remote cascade removes the client's invoice rows with it.
	s.pushRemote("delete_client", func(ctx context.Context, owner string) error {
		return s.mirror.DeleteClient(ctx, owner, clientID)
	})
	return nil
}

// SetInvoiceStatus records a status for one (client, year, month) cell,
// creating the cell with defaults when it does not exist yet. NA is synthetic
// and rejected.
func (s *Service) SetInvoiceStatus(ctx context.Context, clientID string, year, month int, status invoice.Status) (invoice.Cell, error) {
	if !status.Storable() {
		return invoice.Cell{}, invoice.ErrInvalidStatus
	}
	return s.setCell(ctx, clientID, year, month, func(cell *invoice.Cell) {
		cell.Status = status
	})
}

// SetInvoiceNotes records notes for one cell, leaving its status untouched.
func (s *Service) SetInvoiceNotes(ctx context.Context, clientID string, year, month int, notes string) (invoice.Cell, error) {
	return s.setCell(ctx, clientID, year, month, func(cell *invoice.Cell) {
		cell.Notes = notes
	})
}

// setCell resolves or lazily creates the addressed cell, applies the mutation,
// and persists. Both field writers funnel through here so the default cell
// and the overwrite semantics stay identical.
func (s *Service) setCell(ctx context.Context, clientID string, year, month int, apply func(*invoice.Cell)) (invoice.Cell, error) {
	if month < 0 || month > 11 {
		return invoice.Cell{}, invoice.ErrInvalidMonth
	}

	s.mu.Lock()
	if s.snap.FindClient(clientID) < 0 {
		s.mu.Unlock()
		return invoice.Cell{}, client.ErrClientNotFound
	}
	now := time.Now().UTC()
	key := invoice.CellID(clientID, year, month)
	cell, ok := s.snap.Invoices[key]
	if !ok {
		cell = invoice.NewCell(clientID, year, month, now)
	}
	apply(&cell)
	cell.UpdatedAt = now
	s.snap.Invoices[key] = cell
	s.saveLocked(ctx)
	s.mu.Unlock()

	s.pushRemote("upsert_cell", func(ctx context.Context, owner string) error {
		return s.mirror.UpsertCell(ctx, owner, cell)
	})
	return cell, nil
}

// saveLocked overwrites the persisted slot with the current snapshot. Local
// persistence failure never rolls back the in-memory mutation; it is logged
// and counted. Caller holds s.mu.
func (s *Service) saveLocked(ctx context.Context) {
	if err := s.store.Save(ctx, s.snap.Clone()); err != nil {
		metrics.SnapshotSaveFailure()
		s.logger.Error("local snapshot save failed", "error", err)
	}
}

// HandleSession drives the sync lifecycle. A nil session means signed out:
// remote sync stops and local state stands. A non-nil session starts an
// asynchronous remote snapshot load scoped to the session's user.
func (s *Service) HandleSession(sess *auth.Session) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	if sess == nil {
		s.owner = ""
		s.state = SyncUnauthenticated
		s.mu.Unlock()
		s.logger.Info("session cleared, remote sync off")
		return
	}
	s.owner = sess.UserID
	s.state = SyncAuthenticating
	s.mu.Unlock()

	if s.mirror == nil {
		s.settle(gen, SyncLocalFallback)
		s.logger.Warn("no remote mirror configured, staying on local state")
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loadRemote(gen, sess.UserID)
	}()
}

// LoadRemoteSnapshot fetches the owner's full remote state and replaces the
// local snapshot with it, persisting the result. Synchronous variant of the
// login fetch: the caller sees the error directly and no lifecycle state
// changes, where HandleSession runs the same replacement detached.
func (s *Service) LoadRemoteSnapshot(ctx context.Context, ownerID string) error {
	if s.mirror == nil {
		return errors.New("no remote mirror configured")
	}
	remote, err := s.mirror.FetchAll(ctx, ownerID)
	if err != nil {
		return err
	}
	remote.Normalize()

	s.mu.Lock()
	s.snap = remote
	s.saveLocked(ctx)
	s.mu.Unlock()
	return nil
}

// loadRemote is the detached login fetch. The generation captured at session
// time guards against applying a result after sign-out or an owner change.
func (s *Service) loadRemote(gen uint64, ownerID string) {
	ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()

	remote, err := s.mirror.FetchAll(ctx, ownerID)
	if err != nil {
		if s.settle(gen, SyncLocalFallback) {
			s.logger.Warn("remote snapshot load failed, using local state",
				"owner", ownerID, "error", err)
			if s.notifier != nil {
				s.notifier.Notify("Couldn't load your remote data; showing the local copy.")
			}
		}
		return
	}
	remote.Normalize()

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		s.logger.Info("discarding stale remote snapshot", "owner", ownerID)
		return
	}
	s.snap = remote
	s.state = SyncSnapshotLoaded
	// The fetch may have consumed most of its deadline; save on a fresh one.
	saveCtx, saveCancel := context.WithTimeout(context.Background(), remoteTimeout)
	s.saveLocked(saveCtx)
	saveCancel()
	s.mu.Unlock()
	s.logger.Info("remote snapshot loaded",
		"owner", ownerID, "clients", len(remote.Clients), "cells", len(remote.Invoices))
}

// settle moves the sync state iff the generation is still current. Reports
// whether the transition applied.
func (s *Service) settle(gen uint64, state SyncState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return false
	}
	s.state = state
	return true
}

// pushRemote launches a detached mirror write when a session is live. Failures
// never roll back local state and are never retried; each is logged, counted,
// and surfaced once.
func (s *Service) pushRemote(op string, fn func(ctx context.Context, owner string) error) {
	s.mu.Lock()
	owner := s.owner
	s.mu.Unlock()
	if owner == "" || s.mirror == nil {
		return
	}

	metrics.RemoteSyncAttempt(op)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()
		if err := fn(ctx, owner); err != nil {
			metrics.RemoteSyncFailure(op)
			s.logger.Warn("remote sync failed", "operation", op, "error", err)
			if s.notifier != nil {
				s.notifier.Notify("Sync failed; your change is saved locally.")
			}
		}
	}()
}

// Wait blocks until every detached remote operation has finished. Used on
// shutdown and in tests.
func (s *Service) Wait() {
	s.wg.Wait()
}
