package postgres

import (
	"context"
	"fmt"
)

// schema tablas del catálogo y del libro de inventario. Las restricciones de unicidad
// sobre (name, parent_id), color y barcode son las que resuelven las carreras entre
// importaciones concurrentes.
const schema = `
CREATE TABLE IF NOT EXISTS categories (
	id         BIGSERIAL PRIMARY KEY,
	idx        INTEGER     NOT NULL DEFAULT 0,
	name       TEXT        NOT NULL,
	type       TEXT        NOT NULL CHECK (type IN ('major', 'minor')),
	parent_id  BIGINT      NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (name, parent_id)
);

CREATE TABLE IF NOT EXISTS color_codes (
	id         BIGSERIAL PRIMARY KEY,
	color      TEXT        NOT NULL UNIQUE,
	value      INTEGER     NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS items (
	id         BIGSERIAL PRIMARY KEY,
	images     TEXT[]      NOT NULL DEFAULT '{}',
	name       TEXT        NOT NULL,
	size       TEXT        NOT NULL DEFAULT '',
	color      TEXT        NOT NULL DEFAULT '',
	major_id   BIGINT      NOT NULL REFERENCES categories (id),
	minor_id   BIGINT      NOT NULL REFERENCES categories (id),
	unit       TEXT        NOT NULL DEFAULT '',
	price      BIGINT      NOT NULL DEFAULT 0,
	cost       BIGINT      NOT NULL DEFAULT 0,
	notes      TEXT        NOT NULL DEFAULT '',
	number     TEXT        NOT NULL DEFAULT '',
	barcode    TEXT        NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ledger_buckets (
	id         BIGSERIAL PRIMARY KEY,
	account_id BIGINT      NOT NULL,
	direction  TEXT        NOT NULL CHECK (direction IN ('in', 'out')),
	channel    TEXT        NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ledger_lines (
	id        BIGSERIAL PRIMARY KEY,
	bucket_id BIGINT NOT NULL REFERENCES ledger_buckets (id),
	item_id   BIGINT NOT NULL REFERENCES items (id),
	quantity  BIGINT NOT NULL,
	unit_cost BIGINT NOT NULL,
	total     BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS ledger_lines_item_idx ON ledger_lines (item_id);
`

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
