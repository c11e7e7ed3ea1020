package incident

import (
	"context"

	"github.com/hospiops/facilityhub/internal/platform/backend"
)

// HTTPRepository talks to the /incidents resource of the facility
// backend.
type HTTPRepository struct {
	client *backend.Client
}

func NewHTTPRepository(client *backend.Client) *HTTPRepository {
	return &HTTPRepository{client: client}
}

func (r *HTTPRepository) List(ctx context.Context) ([]Incident, error) {
	var out []Incident
	if err := r.client.Get(ctx, "/incidents", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPRepository) GetByID(ctx context.Context, id string) (*Incident, error) {
	var inc Incident
	if err := r.client.Get(ctx, "/incidents/"+id, &inc); err != nil {
		return nil, err
	}
	return &inc, nil
}

func (r *HTTPRepository) Create(ctx context.Context, inc *Incident) error {
	return r.client.Post(ctx, "/incidents", inc, inc)
}

func (r *HTTPRepository) Update(ctx context.Context, inc *Incident) error {
	return r.client.Put(ctx, "/incidents/"+inc.ID, inc, inc)
}
