package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS menu_versions (
    id         TEXT PRIMARY KEY,
    hash       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    created_by TEXT,
    snapshot   JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS menu_items (
    id          TEXT PRIMARY KEY,
    version_id  TEXT NOT NULL REFERENCES menu_versions(id),
    external_id TEXT,
    name        TEXT NOT NULL,
    price_cents BIGINT NOT NULL,
    section     TEXT,
    category    TEXT,
    station     TEXT,
    position    INT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_menu_items_version ON menu_items(version_id);

CREATE TABLE IF NOT EXISTS corrections (
    id                TEXT PRIMARY KEY,
    raw_text          TEXT NOT NULL,
    predicted_item_id TEXT,
    corrected_item_id TEXT NOT NULL,
    user_id           TEXT,
    created_at        TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_corrections_created ON corrections(created_at DESC);

CREATE TABLE IF NOT EXISTS workstations (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    slug       TEXT NOT NULL UNIQUE,
    color      TEXT NOT NULL,
    active     BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS tickets (
    id          TEXT PRIMARY KEY,
    table_no    INT NOT NULL,
    waiter_id   TEXT,
    text        TEXT NOT NULL,
    status      TEXT NOT NULL,
    total_cents BIGINT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS ticket_lines (
    id               TEXT PRIMARY KEY,
    ticket_id        TEXT NOT NULL REFERENCES tickets(id),
    text             TEXT NOT NULL,
    note             TEXT,
    category         TEXT NOT NULL,
    menu_id          TEXT,
    menu_name        TEXT,
    unit_price_cents BIGINT NOT NULL,
    qty              DOUBLE PRECISION NOT NULL,
    unit             TEXT,
    multiplier       DOUBLE PRECISION NOT NULL,
    line_total_cents BIGINT NOT NULL,
    score            DOUBLE PRECISION,
    status           TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ticket_lines_ticket ON ticket_lines(ticket_id);
`

// EnsureSchema creates the tables on first contact. Statements are all
// IF NOT EXISTS so reruns are harmless.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
