package localstore_test

import (
	"context"
	"testing"
	"time"

	"invotrack/internal/domain/client"
	"invotrack/internal/domain/invoice"
	"invotrack/internal/domain/snapshot"
	"invotrack/internal/localstore"

	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *localstore.Store {
	t.Helper()
	store, err := localstore.Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLoad_Empty(t *testing.T) {
	store := openStore(t)

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, snap.Clients)
	require.Empty(t, snap.Invoices)
	require.Equal(t, snapshot.Version, snap.Version)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	snap := snapshot.Default()
	snap.Clients = append(snap.Clients, client.Client{
		ID:           "c1",
		Name:         "Acme",
		Frequency:    client.FrequencyQuarterly,
		Instructions: "net 30",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	cell := invoice.NewCell("c1", 2025, 3, now)
	cell.Status = invoice.StatusCompleted
	snap.Invoices[cell.ID] = cell

	require.NoError(t, store.Save(ctx, snap))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, snap, loaded)
}

func TestSave_OverwritesSlot(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first := snapshot.Default()
	first.Clients = append(first.Clients, client.Client{
		ID: "c1", Name: "First", Frequency: client.FrequencyMonthly,
	})
	require.NoError(t, store.Save(ctx, first))

	second := snapshot.Default()
	second.Clients = append(second.Clients, client.Client{
		ID: "c2", Name: "Second", Frequency: client.FrequencyAnnual,
	})
	require.NoError(t, store.Save(ctx, second))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Clients, 1)
	require.Equal(t, "c2", loaded.Clients[0].ID)
}

func TestLoad_CorruptPayloadFallsBack(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.CorruptSlot())

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, snap.Clients)
	require.Equal(t, snapshot.Version, snap.Version)
}
