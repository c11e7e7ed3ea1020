package booking

import (
	"context"

	"github.com/hospiops/facilityhub/internal/platform/backend"
)

// HTTPRepository talks to the /reservations resource of the facility
// backend.
type HTTPRepository struct {
	client *backend.Client
}

func NewHTTPRepository(client *backend.Client) *HTTPRepository {
	return &HTTPRepository{client: client}
}

func (r *HTTPRepository) List(ctx context.Context) ([]Booking, error) {
	var out []Booking
	if err := r.client.Get(ctx, "/reservations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	var b Booking
	if err := r.client.Get(ctx, "/reservations/"+id, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *HTTPRepository) Create(ctx context.Context, b *Booking) error {
	return r.client.Post(ctx, "/reservations", b, b)
}

func (r *HTTPRepository) Update(ctx context.Context, b *Booking) error {
	return r.client.Put(ctx, "/reservations/"+b.ID, b, b)
}
