package users

import (
	"context"
)

type Service struct {
	dir Directory
}

func NewService(dir Directory) *Service {
	return &Service{dir: dir}
}

// Authenticate checks email + password against the directory.
//
// It returns ErrInvalidCredentials for an unknown email AND for a
// wrong password — callers must not be able to tell registered
// addresses apart from unregistered ones.
func (s *Service) Authenticate(
	ctx context.Context,
	email string,
	password string,
) (*User, error) {

	user, err := s.dir.UserByEmail(ctx, email)
	if err != nil {
		// hide whether user exists or not
		return nil, ErrInvalidCredentials
	}

	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// UserByID exposes directory lookup for session-authenticated reads.
func (s *Service) UserByID(ctx context.Context, id string) (*User, error) {
	return s.dir.UserByID(ctx, id)
}
