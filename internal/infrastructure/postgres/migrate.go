package postgres

import (
	"context"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS cards (
    id                UUID PRIMARY KEY,
    name              TEXT NOT NULL,
    color             TEXT NOT NULL,
    credit_limit      DOUBLE PRECISION NOT NULL DEFAULT 0,
    good_purchase_day INT NOT NULL DEFAULT 1,
    payment_day       INT NOT NULL DEFAULT 10,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS card_purchases (
    id                UUID PRIMARY KEY,
    card_id           UUID NOT NULL,
    description       TEXT NOT NULL,
    amount            DOUBLE PRECISION NOT NULL DEFAULT 0,
    installments      INT NOT NULL DEFAULT 1,
    purchase_date     TEXT NOT NULL,
    paid_installments INT[] NOT NULL DEFAULT '{}',
    created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS fixed_incomes (
    id          UUID PRIMARY KEY,
    description TEXT NOT NULL,
    amount      DOUBLE PRECISION NOT NULL DEFAULT 0,
    due_day     INT NOT NULL DEFAULT 1,
    category    TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS fixed_expenses (
    id         UUID PRIMARY KEY,
    name       TEXT NOT NULL,
    amount     DOUBLE PRECISION NOT NULL DEFAULT 0,
    category   TEXT NOT NULL,
    due_day    INT NOT NULL DEFAULT 1,
    active     BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS freelance_projects (
    id            UUID PRIMARY KEY,
    name          TEXT NOT NULL,
    client        TEXT NOT NULL DEFAULT '',
    amount        DOUBLE PRECISION NOT NULL DEFAULT 0,
    status        TEXT NOT NULL,
    start_date    TEXT NOT NULL DEFAULT '',
    delivery_date TEXT NOT NULL DEFAULT '',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS freelance_expenses (
    id          UUID PRIMARY KEY,
    description TEXT NOT NULL,
    amount      DOUBLE PRECISION NOT NULL DEFAULT 0,
    expense_date TEXT NOT NULL DEFAULT '',
    project_id  UUID,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS savings_entries (
    id          UUID PRIMARY KEY,
    entry_type  TEXT NOT NULL,
    amount      DOUBLE PRECISION NOT NULL DEFAULT 0,
    description TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS savings_config (
    id           INT PRIMARY KEY DEFAULT 1,
    monthly_goal DOUBLE PRECISION NOT NULL DEFAULT 0,
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT savings_config_singleton CHECK (id = 1)
);

CREATE INDEX IF NOT EXISTS idx_card_purchases_card ON card_purchases(card_id);
`

// billingNotifySQL wires pg_notify so the listener sees every card and
// purchase change without polling. The payload only names the table; the
// watcher refetches both sets on any change.
const billingNotifySQL = `
CREATE OR REPLACE FUNCTION notify_billing_changed() RETURNS trigger AS $$
BEGIN
    PERFORM pg_notify('billing_changed', TG_TABLE_NAME);
    RETURN NULL;
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS cards_billing_changed ON cards;
CREATE TRIGGER cards_billing_changed
    AFTER INSERT OR UPDATE OR DELETE ON cards
    FOR EACH STATEMENT EXECUTE FUNCTION notify_billing_changed();

DROP TRIGGER IF EXISTS card_purchases_billing_changed ON card_purchases;
CREATE TRIGGER card_purchases_billing_changed
    AFTER INSERT OR UPDATE OR DELETE ON card_purchases
    FOR EACH STATEMENT EXECUTE FUNCTION notify_billing_changed();
`

// Migrate creates the schema and notification triggers. All statements are
// idempotent, so this runs unconditionally at startup.
func Migrate(ctx context.Context, db *DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, billingNotifySQL); err != nil {
		return fmt.Errorf("failed to install notify triggers: %w", err)
	}
	return nil
}
