package users

import (
	"context"
	"database/sql"

	"github.com/JoelCodes/w6d4-lecture-auth/internal/db"
)

// PostgresDirectory reads the users table. This is the production
// directory; it never writes.
type PostgresDirectory struct {
	db *db.DB
}

func NewPostgresDirectory(db *db.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

func (d *PostgresDirectory) UserByID(ctx context.Context, id string) (*User, error) {

	var u User

	err := d.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.PasswordHash)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (d *PostgresDirectory) UserByEmail(ctx context.Context, email string) (*User, error) {

	var u User

	err := d.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}
