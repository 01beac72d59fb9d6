// Package snapshot defines the whole-application state: the ordered client
// collection plus the invoice cell map, tagged with a schema version.
package snapshot

import (
	"invotrack/internal/domain/client"
	"invotrack/internal/domain/invoice"
)

// Version is the current snapshot schema version. Present for forward
// migration; nothing consumes it yet beyond the constant.
const Version = 1

// Snapshot is the complete application state at a point in time. Client order
// is preserved; cell keys follow invoice.CellID.
type Snapshot struct {
	Clients  []client.Client         `json:"clients"`
	Invoices map[string]invoice.Cell `json:"invoices"`
	Version  int                     `json:"version"`
}

// Default returns an empty snapshot at the current schema version.
func Default() *Snapshot {
	return &Snapshot{
		Clients:  []client.Client{},
		Invoices: map[string]invoice.Cell{},
		Version:  Version,
	}
}

// Clone returns a deep copy. Cells and clients are value types, so copying
// the slice and map suffices.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Clients:  make([]client.Client, len(s.Clients)),
		Invoices: make(map[string]invoice.Cell, len(s.Invoices)),
		Version:  s.Version,
	}
	copy(out.Clients, s.Clients)
	for k, v := range s.Invoices {
		out.Invoices[k] = v
	}
	return out
}

// FindClient returns the index of the client with the given ID, or -1.
func (s *Snapshot) FindClient(id string) int {
	for i := range s.Clients {
		if s.Clients[i].ID == id {
			return i
		}
	}
	return -1
}

// Normalize repairs a snapshot decoded from storage: nil collections become
// empty and a missing version tag is stamped with the current one.
func (s *Snapshot) Normalize() {
	if s.Clients == nil {
		s.Clients = []client.Client{}
	}
	if s.Invoices == nil {
		s.Invoices = map[string]invoice.Cell{}
	}
	if s.Version == 0 {
		s.Version = Version
	}
}
