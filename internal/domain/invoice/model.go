package invoice

import (
	"fmt"
	"time"
)

// Status is the recorded state of one client's invoice for one month.
type Status string

const (
	StatusNotDone       Status = "NOT_DONE"
	StatusCompleted     Status = "COMPLETED"
	StatusRecurringDone Status = "RECURRING_DONE"
	// StatusNA is synthetic: it marks months the client's frequency does not
	// cover and is computed at read time, never stored.
	StatusNA Status = "NA"
)

// Storable reports whether s may be written to a cell. NA is render-only.
func (s Status) Storable() bool {
	switch s {
	case StatusNotDone, StatusCompleted, StatusRecurringDone:
		return true
	}
	return false
}

// ParseStatus converts a string into a storable Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Storable() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// StatusMeta describes a status for presentation.
type StatusMeta struct {
	Status      Status `json:"status"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// StatusCatalog lists every status with its display metadata.
func StatusCatalog() []StatusMeta {
	return []StatusMeta{
		{Status: StatusNotDone, Label: "Not Done", Description: "Invoice not yet prepared"},
		{Status: StatusCompleted, Label: "Completed", Description: "Invoice created and sent"},
		{Status: StatusRecurringDone, Label: "Recurring Done", Description: "Recurring invoice handled"},
		{Status: StatusNA, Label: "N/A", Description: "Not applicable for this period"},
	}
}

// Cell records one client's invoice status for one calendar month.
// Month is zero-indexed (0 = January) everywhere except the remote boundary.
type Cell struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"clientId"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Status    Status    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CellID builds the composite cell key. The MM component is one-indexed and
// zero-padded even though Month itself stays zero-indexed.
func CellID(clientID string, year, month int) string {
	return fmt.Sprintf("%s:%04d-%02d", clientID, year, month+1)
}

// KeyPrefix is the prefix shared by every cell key belonging to clientID.
func KeyPrefix(clientID string) string {
	return clientID + ":"
}

// NewCell returns the default cell for a (client, year, month) triple. Lazy
// cell creation funnels through here so defaults stay in one place.
func NewCell(clientID string, year, month int, now time.Time) Cell {
	return Cell{
		ID:        CellID(clientID, year, month),
		ClientID:  clientID,
		Year:      year,
		Month:     month,
		Status:    StatusNotDone,
		Notes:     "",
		UpdatedAt: now,
	}
}
