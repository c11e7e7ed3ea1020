package risk

import (
	"context"

	"github.com/hospiops/facilityhub/internal/platform/backend"
)

// HTTPRepository talks to the /risques resource of the facility
// backend.
type HTTPRepository struct {
	client *backend.Client
}

func NewHTTPRepository(client *backend.Client) *HTTPRepository {
	return &HTTPRepository{client: client}
}

func (r *HTTPRepository) List(ctx context.Context) ([]Risk, error) {
	var out []Risk
	if err := r.client.Get(ctx, "/risques", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPRepository) GetByID(ctx context.Context, id string) (*Risk, error) {
	var rk Risk
	if err := r.client.Get(ctx, "/risques/"+id, &rk); err != nil {
		return nil, err
	}
	return &rk, nil
}

func (r *HTTPRepository) Create(ctx context.Context, rk *Risk) error {
	return r.client.Post(ctx, "/risques", rk, rk)
}

func (r *HTTPRepository) Update(ctx context.Context, rk *Risk) error {
	return r.client.Put(ctx, "/risques/"+rk.ID, rk, rk)
}
