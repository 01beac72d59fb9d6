package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"invotrack/internal/domain/client"
	"invotrack/internal/domain/invoice"
	"invotrack/internal/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// newTestMirror connects to the database named by TEST_DATABASE_URL and skips
// when none is configured.
func newTestMirror(t *testing.T) *postgres.Mirror {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	require.NoError(t, postgres.RunMigrations(ctx, pool))
	t.Cleanup(pool.Close)

	return postgres.NewMirror(pool, 5*time.Second)
}

func TestMirror_RoundTrip(t *testing.T) {
	mirror := newTestMirror(t)
	ctx := context.Background()
	owner := uuid.NewString()

	now := time.Now().UTC()
	c := client.Client{
		ID:           uuid.NewString(),
		Name:         "Acme",
		Frequency:    client.FrequencyMonthly,
		Instructions: "net 30",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, mirror.UpsertClient(ctx, owner, c))

	cell := invoice.NewCell(c.ID, 2025, 3, now)
	cell.Status = invoice.StatusCompleted
	require.NoError(t, mirror.UpsertCell(ctx, owner, cell))

	snap, err := mirror.FetchAll(ctx, owner)
	require.NoError(t, err)
	require.Len(t, snap.Clients, 1)
	require.Equal(t, c.ID, snap.Clients[0].ID)
	require.Equal(t, "net 30", snap.Clients[0].Instructions)

	got, ok := snap.Invoices[invoice.CellID(c.ID, 2025, 3)]
	require.True(t, ok)
	require.Equal(t, 3, got.Month)
	require.Equal(t, invoice.StatusCompleted, got.Status)

	// Writing the same cell again overwrites in place.
	cell.Status = invoice.StatusRecurringDone
	cell.Notes = "second pass"
	require.NoError(t, mirror.UpsertCell(ctx, owner, cell))

	snap, err = mirror.FetchAll(ctx, owner)
	require.NoError(t, err)
	require.Len(t, snap.Invoices, 1)
	got = snap.Invoices[invoice.CellID(c.ID, 2025, 3)]
	require.Equal(t, invoice.StatusRecurringDone, got.Status)
	require.Equal(t, "second pass", got.Notes)

	// Another owner sees none of it.
	other, err := mirror.FetchAll(ctx, uuid.NewString())
	require.NoError(t, err)
	require.Empty(t, other.Clients)
	require.Empty(t, other.Invoices)

	// Deleting the client cascades to its invoices.
	require.NoError(t, mirror.DeleteClient(ctx, owner, c.ID))
	snap, err = mirror.FetchAll(ctx, owner)
	require.NoError(t, err)
	require.Empty(t, snap.Clients)
	require.Empty(t, snap.Invoices)
}
