package repository

import (
	"context"
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS tea_orders (
	id              TEXT PRIMARY KEY,
	status          TEXT NOT NULL,
	full_name       TEXT NOT NULL DEFAULT '',
	email           TEXT NOT NULL DEFAULT '',
	phone           TEXT NOT NULL DEFAULT '',
	tea_type        TEXT NOT NULL,
	tea_label       TEXT NOT NULL,
	unit_price      INTEGER NOT NULL CHECK (unit_price >= 0),
	quantity        INTEGER NOT NULL CHECK (quantity > 0),
	temperature     TEXT NOT NULL DEFAULT '',
	addons          JSONB NOT NULL DEFAULT '[]',
	addons_subtotal INTEGER NOT NULL CHECK (addons_subtotal >= 0),
	delivery        TEXT NOT NULL,
	delivery_charge INTEGER NOT NULL CHECK (delivery_charge >= 0),
	total           INTEGER NOT NULL CHECK (total >= 0),
	created_at      TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS tea_orders_email_created_idx
	ON tea_orders (lower(email), created_at DESC);

CREATE TABLE IF NOT EXISTS contact_messages (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	phone      TEXT,
	subject    TEXT NOT NULL,
	message    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema creates the service's tables when they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
