package audit

import (
	"context"

	"github.com/hospiops/facilityhub/internal/platform/backend"
)

// HTTPRepository talks to the /audits resource of the facility backend.
type HTTPRepository struct {
	client *backend.Client
}

func NewHTTPRepository(client *backend.Client) *HTTPRepository {
	return &HTTPRepository{client: client}
}

func (r *HTTPRepository) List(ctx context.Context) ([]Audit, error) {
	var out []Audit
	if err := r.client.Get(ctx, "/audits", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPRepository) GetByID(ctx context.Context, id string) (*Audit, error) {
	var a Audit
	if err := r.client.Get(ctx, "/audits/"+id, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *HTTPRepository) Create(ctx context.Context, a *Audit) error {
	return r.client.Post(ctx, "/audits", a, a)
}

func (r *HTTPRepository) Update(ctx context.Context, a *Audit) error {
	return r.client.Put(ctx, "/audits/"+a.ID, a, a)
}
