package visitor

import (
	"context"

	"github.com/hospiops/facilityhub/internal/platform/backend"
)

// HTTPRepository talks to the /visiteurs resource of the facility
// backend.
type HTTPRepository struct {
	client *backend.Client
}

func NewHTTPRepository(client *backend.Client) *HTTPRepository {
	return &HTTPRepository{client: client}
}

func (r *HTTPRepository) List(ctx context.Context) ([]Visitor, error) {
	var out []Visitor
	if err := r.client.Get(ctx, "/visiteurs", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPRepository) GetByID(ctx context.Context, id string) (*Visitor, error) {
	var v Visitor
	if err := r.client.Get(ctx, "/visiteurs/"+id, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *HTTPRepository) Create(ctx context.Context, v *Visitor) error {
	return r.client.Post(ctx, "/visiteurs", v, v)
}

func (r *HTTPRepository) Update(ctx context.Context, v *Visitor) error {
	return r.client.Put(ctx, "/visiteurs/"+v.ID, v, v)
}
