package users

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("user not found")
)

// User is an identity record in the directory. Records are seeded out
// of band and read-only at runtime.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // never serialized
}

// Directory is the user lookup contract. Email lookup is
// case-insensitive. Both methods return ErrNotFound on a miss.
type Directory interface {
	UserByID(ctx context.Context, id string) (*User, error)
	UserByEmail(ctx context.Context, email string) (*User, error)
}
