package identity

import (
	"context"
	"fmt"
)

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("user id is required")
	}
	return s.users.GetByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.users.List(ctx)
}

// Directory returns the user list keyed by ID, used when resolving
// assignees and reporters in bulk.
func (s *Service) Directory(ctx context.Context) (map[string]User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	dir := make(map[string]User, len(users))
	for _, u := range users {
		dir[u.ID] = u
	}
	return dir, nil
}
