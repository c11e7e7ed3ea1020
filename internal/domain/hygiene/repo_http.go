package hygiene

import (
	"context"

	"github.com/hospiops/facilityhub/internal/platform/backend"
)

// HTTPCycleRepository talks to the /sterilisations resource of the
// facility backend.
type HTTPCycleRepository struct {
	client *backend.Client
}

func NewHTTPCycleRepository(client *backend.Client) *HTTPCycleRepository {
	return &HTTPCycleRepository{client: client}
}

func (r *HTTPCycleRepository) List(ctx context.Context) ([]SterilizationCycle, error) {
	var out []SterilizationCycle
	if err := r.client.Get(ctx, "/sterilisations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPCycleRepository) GetByID(ctx context.Context, id string) (*SterilizationCycle, error) {
	var c SterilizationCycle
	if err := r.client.Get(ctx, "/sterilisations/"+id, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *HTTPCycleRepository) Create(ctx context.Context, c *SterilizationCycle) error {
	return r.client.Post(ctx, "/sterilisations", c, c)
}

func (r *HTTPCycleRepository) Update(ctx context.Context, c *SterilizationCycle) error {
	return r.client.Put(ctx, "/sterilisations/"+c.ID, c, c)
}

// HTTPWasteRepository talks to the /dechets resource.
type HTTPWasteRepository struct {
	client *backend.Client
}

func NewHTTPWasteRepository(client *backend.Client) *HTTPWasteRepository {
	return &HTTPWasteRepository{client: client}
}

func (r *HTTPWasteRepository) List(ctx context.Context) ([]MedicalWaste, error) {
	var out []MedicalWaste
	if err := r.client.Get(ctx, "/dechets", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPWasteRepository) Create(ctx context.Context, w *MedicalWaste) error {
	return r.client.Post(ctx, "/dechets", w, w)
}

// HTTPLaundryRepository talks to the /linge resource.
type HTTPLaundryRepository struct {
	client *backend.Client
}

func NewHTTPLaundryRepository(client *backend.Client) *HTTPLaundryRepository {
	return &HTTPLaundryRepository{client: client}
}

func (r *HTTPLaundryRepository) List(ctx context.Context) ([]LaundryTracking, error) {
	var out []LaundryTracking
	if err := r.client.Get(ctx, "/linge", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPLaundryRepository) Create(ctx context.Context, l *LaundryTracking) error {
	return r.client.Post(ctx, "/linge", l, l)
}
