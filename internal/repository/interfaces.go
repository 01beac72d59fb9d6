package repository

import (
	"context"

	"invotrack/internal/domain/client"
	"invotrack/internal/domain/invoice"
	"invotrack/internal/domain/snapshot"
)

// SnapshotStore persists the whole application snapshot to on-device storage.
// Persistence is whole-blob overwrite, not incremental.
type SnapshotStore interface {
	// Load returns the stored snapshot, or a default empty snapshot when no
	// prior state exists or the stored payload is unparsable.
	Load(ctx context.Context) (*snapshot.Snapshot, error)
	// Save serializes and overwrites the single persisted slot.
	Save(ctx context.Context, snap *snapshot.Snapshot) error
}

// RemoteMirror mirrors local records to an owner-scoped remote backend.
// Months cross this boundary one-indexed; implementations translate.
type RemoteMirror interface {
	// FetchAll loads every client and invoice cell owned by ownerID.
	FetchAll(ctx context.Context, ownerID string) (*snapshot.Snapshot, error)
	UpsertClient(ctx context.Context, ownerID string, c client.Client) error
	DeleteClient(ctx context.Context, ownerID, clientID string) error
	UpsertCell(ctx context.Context, ownerID string, cell invoice.Cell) error
}
