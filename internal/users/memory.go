package users

import (
	"context"
	"strings"
)

// MemoryDirectory is a read-only in-memory directory. It backs the
// dev/demo deployment (no DATABASE_DSN) and tests.
type MemoryDirectory struct {
	byID    map[string]*User
	byEmail map[string]*User
}

func NewMemoryDirectory(users ...User) *MemoryDirectory {
	dir := &MemoryDirectory{
		byID:    make(map[string]*User, len(users)),
		byEmail: make(map[string]*User, len(users)),
	}
	for i := range users {
		u := users[i]
		dir.byID[u.ID] = &u
		dir.byEmail[strings.ToLower(u.Email)] = &u
	}
	return dir
}

// SeedDirectory builds the demo directory. Passwords equal the ids;
// hashes are computed at startup so no hash material ships in source.
func SeedDirectory() (*MemoryDirectory, error) {
	seeds := []struct {
		id    string
		email string
	}{
		{"joel", "joel@joel.joel"},
		{"sam", "sam@sam.sam"},
		{"morgan", "morgan@morgan.morgan"},
	}

	users := make([]User, 0, len(seeds))
	for _, s := range seeds {
		hash, err := HashPassword(s.id)
		if err != nil {
			return nil, err
		}
		users = append(users, User{
			ID:           s.id,
			Email:        s.email,
			PasswordHash: hash,
		})
	}

	return NewMemoryDirectory(users...), nil
}

func (d *MemoryDirectory) UserByID(ctx context.Context, id string) (*User, error) {
	u, ok := d.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (d *MemoryDirectory) UserByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := d.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}
