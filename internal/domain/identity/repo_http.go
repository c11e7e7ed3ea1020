package identity

import (
	"context"

	"github.com/hospiops/facilityhub/internal/platform/backend"
)

// HTTPUserRepository reads the user directory from the facility backend.
type HTTPUserRepository struct {
	client *backend.Client
}

func NewHTTPUserRepository(client *backend.Client) *HTTPUserRepository {
	return &HTTPUserRepository{client: client}
}

func (r *HTTPUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	var u User
	if err := r.client.Get(ctx, "/users/"+id, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *HTTPUserRepository) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.client.Get(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}
