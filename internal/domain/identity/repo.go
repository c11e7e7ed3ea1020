package identity

import "context"

// UserRepository defines access to the upstream user directory.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]User, error)
}
