package postgres

import (
	"context"
	"fmt"
)

// schema holds the two tables of this service. Kept as idempotent DDL
// run at startup; the schema is small enough that a migration tool
// would be overhead.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		session_id      TEXT PRIMARY KEY,
		username        TEXT NOT NULL,
		credential_blob BYTEA NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL,
		last_seen_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS apps (
		app_id             TEXT PRIMARY KEY,
		name               TEXT NOT NULL,
		website            TEXT,
		redirect_uris      TEXT NOT NULL,
		client_id          TEXT NOT NULL UNIQUE,
		client_secret      TEXT NOT NULL UNIQUE,
		vapid_key          TEXT NOT NULL,
		scopes             TEXT NOT NULL,
		session_id         TEXT REFERENCES sessions (session_id) ON DELETE SET NULL,
		authorization_code TEXT,
		access_token       TEXT,
		created_at         TIMESTAMPTZ NOT NULL,
		last_used_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS apps_access_token_idx ON apps (access_token)`,
}

// Migrate applies the schema.
func Migrate(ctx context.Context, db *DB) error {
	for _, stmt := range schema {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}
