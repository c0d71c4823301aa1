package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		contract_number VARCHAR(64) NOT NULL,
		kind VARCHAR(16) NOT NULL CHECK (kind IN ('rental', 'supply')),
		property_id UUID,
		unit_id UUID,
		tenant_id UUID,
		owner_id UUID,
		contract_status VARCHAR(16) NOT NULL DEFAULT 'draft',
		start_date DATE,
		end_date DATE,
		duration_months INTEGER NOT NULL CHECK (duration_months > 0),
		payment_frequency VARCHAR(16) NOT NULL,
		payments_count INTEGER,
		monthly_rent NUMERIC(14,2) NOT NULL DEFAULT 0,
		renewed_from_id UUID REFERENCES contracts(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contracts_number ON contracts (contract_number);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_status_end ON contracts (contract_status, end_date);`,
	`CREATE TABLE IF NOT EXISTS collection_payments (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE RESTRICT,
		installment_number INTEGER NOT NULL,
		amount NUMERIC(14,2) NOT NULL,
		due_date_start DATE,
		due_date_end DATE,
		collection_date DATE,
		delay_duration INTEGER,
		delay_reason TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_collection_payments_installment ON collection_payments (contract_id, installment_number);`,
	`CREATE INDEX IF NOT EXISTS idx_collection_payments_open ON collection_payments (due_date_start) WHERE collection_date IS NULL;`,
	`CREATE TABLE IF NOT EXISTS supply_payments (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE RESTRICT,
		installment_number INTEGER NOT NULL,
		amount NUMERIC(14,2) NOT NULL,
		due_date DATE,
		paid_date DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_supply_payments_installment ON supply_payments (contract_id, installment_number);`,
	`CREATE TABLE IF NOT EXISTS settings (
		key VARCHAR(64) PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE OR REPLACE FUNCTION forbid_payment_delete() RETURNS trigger AS $$
	BEGIN
		RAISE EXCEPTION 'payments cannot be deleted';
	END
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_collection_payments_no_delete') THEN
			CREATE TRIGGER trg_collection_payments_no_delete BEFORE DELETE ON collection_payments
				FOR EACH ROW EXECUTE FUNCTION forbid_payment_delete();
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_supply_payments_no_delete') THEN
			CREATE TRIGGER trg_supply_payments_no_delete BEFORE DELETE ON supply_payments
				FOR EACH ROW EXECUTE FUNCTION forbid_payment_delete();
		END IF;
	END
	$$;`,
}

// Migrate applies the schema statements in order. Every statement is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range migrationStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
