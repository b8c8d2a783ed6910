// Package directory serves the read-only roster of users who may run an intake.
package directory

import (
	"context"
	"errors"
	"strings"

	"projectai/internal/intake"
)

var errNotConfigured = errors.New("directory service not configured")

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Lookup returns ErrNotFound for unknown or blank ids.
func (s *Service) Lookup(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return User{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	if s == nil || s.Repo == nil {
		return nil, errNotConfigured
	}
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

// IntakeResolver adapts Lookup to the resolver the intake handler accepts.
func (s *Service) IntakeResolver() intake.UserResolver {
	return func(ctx context.Context, id string) (*intake.User, error) {
		user, err := s.Lookup(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return nil, intake.ErrUnknownUser
		}
		if err != nil {
			return nil, err
		}
		return user.IntakeUser(), nil
	}
}
