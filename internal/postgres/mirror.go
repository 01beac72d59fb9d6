// Package postgres implements the remote mirror: an owner-scoped copy of the
// local snapshot in a PostgreSQL backend. Every operation is keyed by the
// owning user; months are stored one-indexed and translated at this boundary.
package postgres

import (
	"context"
	"fmt"
	"time"

	"invotrack/internal/domain/client"
	"invotrack/internal/domain/invoice"
	"invotrack/internal/domain/snapshot"
	"invotrack/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// Mirror is a pgx-backed repository.RemoteMirror.
type Mirror struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// NewMirror creates a Mirror. queryTimeout sets the per-query context
// deadline; zero means no timeout.
func NewMirror(pool *pgxpool.Pool, queryTimeout time.Duration) *Mirror {
	return &Mirror{pool: pool, queryTimeout: queryTimeout}
}

// Ping reports whether the backend is reachable.
func (m *Mirror) Ping(ctx context.Context) error {
	return m.pool.Ping(ctx)
}

func (m *Mirror) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.queryTimeout > 0 {
		return context.WithTimeout(ctx, m.queryTimeout)
	}
	return ctx, func() {}
}

// FetchAll loads the complete owner-scoped snapshot. The client and invoice
// queries run concurrently; either failing fails the whole fetch.
func (m *Mirror) FetchAll(ctx context.Context, ownerID string) (*snapshot.Snapshot, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	var (
		clients []client.Client
		cells   []invoice.Cell
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		clients, err = m.fetchClients(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		cells, err = m.fetchCells(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := snapshot.Default()
	snap.Clients = clients
	for _, cell := range cells {
		snap.Invoices[cell.ID] = cell
	}
	return snap, nil
}

func (m *Mirror) fetchClients(ctx context.Context, ownerID string) ([]client.Client, error) {
	rows, err := m.pool.Query(ctx, `
		SELECT id, name, frequency, instructions, created_at, updated_at
		FROM clients
		WHERE user_id = $1
		ORDER BY name
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("fetch clients: %w: %w", repository.ErrRemoteUnavailable, err)
	}
	defer rows.Close()

	clients := []client.Client{}
	for rows.Next() {
		var row clientRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Frequency, &row.Instructions, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client row: %w", err)
		}
		clients = append(clients, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate client rows: %w", err)
	}
	return clients, nil
}

func (m *Mirror) fetchCells(ctx context.Context, ownerID string) ([]invoice.Cell, error) {
	rows, err := m.pool.Query(ctx, `
		SELECT client_id, year, month, status, notes, updated_at
		FROM invoices
		WHERE user_id = $1
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("fetch invoices: %w: %w", repository.ErrRemoteUnavailable, err)
	}
	defer rows.Close()

	cells := []invoice.Cell{}
	for rows.Next() {
		var row invoiceRow
		if err := rows.Scan(&row.ClientID, &row.Year, &row.Month, &row.Status, &row.Notes, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice row: %w", err)
		}
		cells = append(cells, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoice rows: %w", err)
	}
	return cells, nil
}

// UpsertClient inserts or overwrites the remote client record keyed by id.
func (m *Mirror) UpsertClient(ctx context.Context, ownerID string, c client.Client) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	_, err := m.pool.Exec(ctx, `
		INSERT INTO clients (id, user_id, name, frequency, instructions)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			frequency = EXCLUDED.frequency,
			instructions = EXCLUDED.instructions,
			updated_at = now()
	`, c.ID, ownerID, c.Name, string(c.Frequency), c.Instructions)
	if err != nil {
		return fmt.Errorf("upsert client: %w: %w", repository.ErrRemoteUnavailable, err)
	}
	return nil
}

// DeleteClient removes the remote client; invoices cascade via the schema.
func (m *Mirror) DeleteClient(ctx context.Context, ownerID, clientID string) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	_, err := m.pool.Exec(ctx, `
		DELETE FROM clients WHERE user_id = $1 AND id = $2
	`, ownerID, clientID)
	if err != nil {
		return fmt.Errorf("delete client: %w: %w", repository.ErrRemoteUnavailable, err)
	}
	return nil
}

// UpsertCell inserts or overwrites the remote invoice record keyed by the
// composite (user, client, year, month) constraint.
func (m *Mirror) UpsertCell(ctx context.Context, ownerID string, cell invoice.Cell) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	row := invoiceRowFromDomain(cell)
	_, err := m.pool.Exec(ctx, `
		INSERT INTO invoices (client_id, user_id, year, month, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, client_id, year, month) DO UPDATE SET
			status = EXCLUDED.status,
			notes = EXCLUDED.notes,
			updated_at = now()
	`, row.ClientID, ownerID, row.Year, row.Month, row.Status, row.Notes)
	if err != nil {
		return fmt.Errorf("upsert invoice cell: %w: %w", repository.ErrRemoteUnavailable, err)
	}
	return nil
}
