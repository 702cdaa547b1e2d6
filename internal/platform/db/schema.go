package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema bootstraps the billing tables on startup. The application owns a
// single local database, so DDL is applied idempotently the same way the
// catalog is initialised on first run.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		price_cents BIGINT NOT NULL CHECK (price_cents >= 0),
		stock BIGINT NOT NULL CHECK (stock >= 0),
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS bills (
		invoice_no BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		subtotal_cents BIGINT NOT NULL,
		tax_cents BIGINT NOT NULL DEFAULT 0,
		total_cents BIGINT NOT NULL,
		payment_method TEXT NOT NULL DEFAULT 'cash'
	)`,
	`CREATE TABLE IF NOT EXISTS bill_lines (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		invoice_no BIGINT NOT NULL REFERENCES bills(invoice_no),
		product_id BIGINT NOT NULL REFERENCES products(id),
		name_snapshot TEXT NOT NULL,
		price_snapshot_cents BIGINT NOT NULL,
		qty BIGINT NOT NULL CHECK (qty > 0),
		line_total_cents BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bill_lines_invoice ON bill_lines (invoice_no)`,
	`CREATE INDEX IF NOT EXISTS idx_bills_created_at ON bills (created_at)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL DEFAULT ''
	)`,
}

// EnsureSchema applies the table definitions if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("platform/db: ensure schema: %w", err)
		}
	}
	return nil
}
