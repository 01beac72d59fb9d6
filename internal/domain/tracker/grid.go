package tracker

import (
	"time"

	"invotrack/internal/domain/invoice"
)

// Default grid window around the center month.
const (
	DefaultPastMonths   = 3
	DefaultFutureMonths = 9
)

// GridMonth is one column of the grid.
type GridMonth struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"`
}

// GridCell is one (client, month) entry with its effective status. Status is
// NA when the client's frequency does not cover the month, NOT_DONE when it
// does but nothing is stored, otherwise the stored status.
type GridCell struct {
	Status     invoice.Status `json:"status"`
	Notes      string         `json:"notes,omitempty"`
	HasNotes   bool           `json:"hasNotes"`
	Applicable bool           `json:"applicable"`
}

// GridRow is one client's cells across the month window, in column order.
type GridRow struct {
	ClientID string     `json:"clientId"`
	Cells    []GridCell `json:"cells"`
}

// Grid is the read-time projection the UI renders.
type Grid struct {
	Months []GridMonth `json:"months"`
	Rows   []GridRow   `json:"rows"`
}

// Grid projects the current snapshot over a month window centered on center:
// past months back, future months forward, center inclusive.
func (s *Service) Grid(center time.Time, past, future int) Grid {
	if past < 0 {
		past = DefaultPastMonths
	}
	if future < 0 {
		future = DefaultFutureMonths
	}
	months := monthsRange(center, past, future)

	s.mu.Lock()
	defer s.mu.Unlock()

	grid := Grid{Months: months, Rows: make([]GridRow, 0, len(s.snap.Clients))}
	for _, c := range s.snap.Clients {
		row := GridRow{ClientID: c.ID, Cells: make([]GridCell, 0, len(months))}
		for _, m := range months {
			gc := GridCell{Applicable: invoice.Applicable(c.Frequency, m.Month)}
			if !gc.Applicable {
				gc.Status = invoice.StatusNA
			} else if cell, ok := s.snap.Invoices[invoice.CellID(c.ID, m.Year, m.Month)]; ok {
				gc.Status = cell.Status
				gc.Notes = cell.Notes
				gc.HasNotes = cell.Notes != ""
			} else {
				gc.Status = invoice.StatusNotDone
			}
			row.Cells = append(row.Cells, gc)
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}

// monthsRange lists the window's months oldest first. Months are zero-indexed.
func monthsRange(center time.Time, past, future int) []GridMonth {
	start := time.Date(center.Year(), center.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -past, 0)
	out := make([]GridMonth, 0, past+future+1)
	for i := 0; i <= past+future; i++ {
		m := start.AddDate(0, i, 0)
		out = append(out, GridMonth{
			Year:  m.Year(),
			Month: int(m.Month()) - 1,
			Label: m.Format("Jan 2006"),
		})
	}
	return out
}
