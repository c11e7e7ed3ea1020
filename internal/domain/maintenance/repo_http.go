package maintenance

import (
	"context"

	"github.com/hospiops/facilityhub/internal/platform/backend"
)

// HTTPRepository talks to the /maintenances resource of the facility
// backend.
type HTTPRepository struct {
	client *backend.Client
}

func NewHTTPRepository(client *backend.Client) *HTTPRepository {
	return &HTTPRepository{client: client}
}

func (r *HTTPRepository) List(ctx context.Context) ([]Task, error) {
	var out []Task
	if err := r.client.Get(ctx, "/maintenances", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPRepository) GetByID(ctx context.Context, id string) (*Task, error) {
	var t Task
	if err := r.client.Get(ctx, "/maintenances/"+id, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *HTTPRepository) Create(ctx context.Context, t *Task) error {
	return r.client.Post(ctx, "/maintenances", t, t)
}

func (r *HTTPRepository) Update(ctx context.Context, t *Task) error {
	return r.client.Put(ctx, "/maintenances/"+t.ID, t, t)
}

// HTTPEquipmentRepository talks to the /equipements resource.
type HTTPEquipmentRepository struct {
	client *backend.Client
}

func NewHTTPEquipmentRepository(client *backend.Client) *HTTPEquipmentRepository {
	return &HTTPEquipmentRepository{client: client}
}

func (r *HTTPEquipmentRepository) List(ctx context.Context) ([]Equipment, error) {
	var out []Equipment
	if err := r.client.Get(ctx, "/equipements", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPEquipmentRepository) GetByID(ctx context.Context, id string) (*Equipment, error) {
	var e Equipment
	if err := r.client.Get(ctx, "/equipements/"+id, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *HTTPEquipmentRepository) Create(ctx context.Context, e *Equipment) error {
	return r.client.Post(ctx, "/equipements", e, e)
}

func (r *HTTPEquipmentRepository) Update(ctx context.Context, e *Equipment) error {
	return r.client.Put(ctx, "/equipements/"+e.ID, e, e)
}
