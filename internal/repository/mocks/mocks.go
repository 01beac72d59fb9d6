package mocks

import (
	"context"

	"invotrack/internal/domain/client"
	"invotrack/internal/domain/invoice"
	"invotrack/internal/domain/snapshot"

	"github.com/stretchr/testify/mock"
)

// SnapshotStore is a mock for repository.SnapshotStore.
type SnapshotStore struct {
	mock.Mock
}

func (m *SnapshotStore) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	args := m.Called(ctx)
	if snap, ok := args.Get(0).(*snapshot.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SnapshotStore) Save(ctx context.Context, snap *snapshot.Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

// RemoteMirror is a mock for repository.RemoteMirror.
type RemoteMirror struct {
	mock.Mock
}

func (m *RemoteMirror) FetchAll(ctx context.Context, ownerID string) (*snapshot.Snapshot, error) {
	args := m.Called(ctx, ownerID)
	if snap, ok := args.Get(0).(*snapshot.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RemoteMirror) UpsertClient(ctx context.Context, ownerID string, c client.Client) error {
	args := m.Called(ctx, ownerID, c)
	return args.Error(0)
}

func (m *RemoteMirror) DeleteClient(ctx context.Context, ownerID, clientID string) error {
	args := m.Called(ctx, ownerID, clientID)
	return args.Error(0)
}

func (m *RemoteMirror) UpsertCell(ctx context.Context, ownerID string, cell invoice.Cell) error {
	args := m.Called(ctx, ownerID, cell)
	return args.Error(0)
}

// Notifier is a mock for tracker.Notifier.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) Notify(message string) {
	m.Called(message)
}
