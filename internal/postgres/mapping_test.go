package postgres

import (
	"testing"
	"time"

	"invotrack/internal/domain/invoice"

	"github.com/stretchr/testify/require"
)

func TestInvoiceRow_ToDomainTranslatesMonth(t *testing.T) {
	updated := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)
	notes := "sent early"
	row := invoiceRow{
		ClientID:  "c1",
		Year:      2025,
		Month:     4, // April, one-indexed
		Status:    "COMPLETED",
		Notes:     &notes,
		UpdatedAt: &updated,
	}

	cell := row.toDomain()
	require.Equal(t, 3, cell.Month)
	require.Equal(t, "c1:2025-04", cell.ID)
	require.Equal(t, invoice.StatusCompleted, cell.Status)
	require.Equal(t, "sent early", cell.Notes)
	require.Equal(t, updated, cell.UpdatedAt)
}

func TestInvoiceRow_FromDomainTranslatesMonth(t *testing.T) {
	cell := invoice.NewCell("c1", 2025, 0, time.Now())
	row := invoiceRowFromDomain(cell)
	require.Equal(t, 1, row.Month)
	require.Equal(t, "NOT_DONE", row.Status)
}

func TestInvoiceRow_RoundTripMonths(t *testing.T) {
	for month := 0; month < 12; month++ {
		cell := invoice.NewCell("c1", 2024, month, time.Time{})
		row := invoiceRowFromDomain(cell)
		require.Equal(t, month+1, row.Month)
		back := row.toDomain()
		require.Equal(t, month, back.Month)
		require.Equal(t, cell.ID, back.ID)
	}
}

func TestClientRow_ToDomainDefaults(t *testing.T) {
	created := time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC)
	row := clientRow{
		ID:        "c1",
		Name:      "Acme",
		Frequency: "Quarterly",
		CreatedAt: created,
	}

	c := row.toDomain()
	require.Equal(t, "", c.Instructions)
	require.Equal(t, created, c.UpdatedAt, "missing updated_at falls back to created_at")
}
