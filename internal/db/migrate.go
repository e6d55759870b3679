package db

import (
	"context"
)

const keystoneMigration = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE IF NOT EXISTS users (
    id text PRIMARY KEY,
    email text NOT NULL,
    password_hash text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_unique
ON users (LOWER(email));
`

// RunKeystoneMigration creates the user directory schema. Users are
// seeded out of band; this service only ever reads them.
func RunKeystoneMigration(ctx context.Context, db *DB) error {
	_, err := db.ExecContext(ctx, keystoneMigration)
	return err
}
