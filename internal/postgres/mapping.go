package postgres

import (
	"time"

	"invotrack/internal/domain/client"
	"invotrack/internal/domain/invoice"
)

// clientRow mirrors the remote clients table.
type clientRow struct {
	ID           string
	Name         string
	Frequency    string
	Instructions *string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

func (r clientRow) toDomain() client.Client {
	updated := r.CreatedAt
	if r.UpdatedAt != nil {
		updated = *r.UpdatedAt
	}
	instructions := ""
	if r.Instructions != nil {
		instructions = *r.Instructions
	}
	return client.Client{
		ID:           r.ID,
		Name:         r.Name,
		Frequency:    client.Frequency(r.Frequency),
		Instructions: instructions,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    updated,
	}
}

// invoiceRow mirrors the remote invoices table. Month is one-indexed here and
// only here; toDomain/fromDomain own the translation.
type invoiceRow struct {
	ClientID  string
	Year      int
	Month     int
	Status    string
	Notes     *string
	UpdatedAt *time.Time
}

func (r invoiceRow) toDomain() invoice.Cell {
	zeroMonth := r.Month - 1
	notes := ""
	if r.Notes != nil {
		notes = *r.Notes
	}
	var updated time.Time
	if r.UpdatedAt != nil {
		updated = *r.UpdatedAt
	}
	return invoice.Cell{
		ID:        invoice.CellID(r.ClientID, r.Year, zeroMonth),
		ClientID:  r.ClientID,
		Year:      r.Year,
		Month:     zeroMonth,
		Status:    invoice.Status(r.Status),
		Notes:     notes,
		UpdatedAt: updated,
	}
}

func invoiceRowFromDomain(cell invoice.Cell) invoiceRow {
	notes := cell.Notes
	return invoiceRow{
		ClientID: cell.ClientID,
		Year:     cell.Year,
		Month:    cell.Month + 1,
		Status:   string(cell.Status),
		Notes:    &notes,
	}
}
