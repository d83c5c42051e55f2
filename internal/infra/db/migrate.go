package db

import (
	"context"
	"database/sql"
)

// schema is applied in order by MigrateUp. Every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS nodes (
    id         BIGSERIAL PRIMARY KEY,
    type       TEXT NOT NULL,
    title      TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS node_fields (
    node_id    BIGINT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
    field_name TEXT NOT NULL,
    delta      INT NOT NULL DEFAULT 0,
    value      TEXT NOT NULL DEFAULT '',
    uri        TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (node_id, field_name, delta)
)`,
	`CREATE TABLE IF NOT EXISTS terms (
    id         BIGSERIAL PRIMARY KEY,
    vocabulary TEXT NOT NULL,
    name       TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS term_fields (
    term_id    BIGINT NOT NULL REFERENCES terms(id) ON DELETE CASCADE,
    field_name TEXT NOT NULL,
    delta      INT NOT NULL DEFAULT 0,
    value      TEXT NOT NULL DEFAULT '',
    uri        TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (term_id, field_name, delta)
)`,
	`CREATE TABLE IF NOT EXISTS node_terms (
    node_id BIGINT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
    term_id BIGINT NOT NULL REFERENCES terms(id) ON DELETE CASCADE,
    delta   INT NOT NULL DEFAULT 0,
    PRIMARY KEY (node_id, term_id)
)`,
	`CREATE TABLE IF NOT EXISTS block_configs (
    block_id   TEXT PRIMARY KEY,
    settings   JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS idx_node_terms_node_id ON node_terms(node_id, delta)`,
}

// dropSchema reverses schema.
var dropSchema = []string{
	`DROP TABLE IF EXISTS block_configs`,
	`DROP TABLE IF EXISTS node_terms`,
	`DROP TABLE IF EXISTS term_fields`,
	`DROP TABLE IF EXISTS terms`,
	`DROP TABLE IF EXISTS node_fields`,
	`DROP TABLE IF EXISTS nodes`,
}

// MigrateUp creates the node store and the block configuration table.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown drops every table created by MigrateUp.
// Use with caution: this deletes all nodes and block settings.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	for _, stmt := range dropSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
