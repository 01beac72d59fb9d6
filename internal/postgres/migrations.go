package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations creates the mirror tables if they don't exist. Row-level
// ownership enforcement belongs to the backend's policy layer, not here.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS clients (
			id           UUID PRIMARY KEY,
			user_id      UUID NOT NULL,
			name         TEXT NOT NULL,
			frequency    TEXT NOT NULL,
			instructions TEXT,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_clients_user ON clients (user_id);

		CREATE TABLE IF NOT EXISTS invoices (
			id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			client_id  UUID NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
			user_id    UUID NOT NULL,
			year       INT NOT NULL,
			month      INT NOT NULL CHECK (month BETWEEN 1 AND 12),
			status     TEXT NOT NULL,
			notes      TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),

			CONSTRAINT uq_invoices_cell UNIQUE (user_id, client_id, year, month)
		);

		CREATE INDEX IF NOT EXISTS idx_invoices_user ON invoices (user_id);
		CREATE INDEX IF NOT EXISTS idx_invoices_client ON invoices (client_id);
	`

	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("migrate mirror schema: %w", err)
	}
	return nil
}
