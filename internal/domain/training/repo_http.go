package training

import (
	"context"

	"github.com/hospiops/facilityhub/internal/platform/backend"
)

// HTTPRepository talks to the /formations resources of the facility
// backend.
type HTTPRepository struct {
	client *backend.Client
}

func NewHTTPRepository(client *backend.Client) *HTTPRepository {
	return &HTTPRepository{client: client}
}

func (r *HTTPRepository) List(ctx context.Context) ([]Training, error) {
	var out []Training
	if err := r.client.Get(ctx, "/formations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPRepository) GetByID(ctx context.Context, id string) (*Training, error) {
	var t Training
	if err := r.client.Get(ctx, "/formations/"+id, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *HTTPRepository) Create(ctx context.Context, t *Training) error {
	return r.client.Post(ctx, "/formations", t, t)
}

func (r *HTTPRepository) Update(ctx context.Context, t *Training) error {
	return r.client.Put(ctx, "/formations/"+t.ID, t, t)
}

func (r *HTTPRepository) ListParticipations(ctx context.Context, trainingID string) ([]Participation, error) {
	var out []Participation
	if err := r.client.Get(ctx, "/formations/"+trainingID+"/participations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPRepository) CreateParticipation(ctx context.Context, p *Participation) error {
	return r.client.Post(ctx, "/formations/"+p.TrainingID+"/participations", p, p)
}

// HTTPCompetencyRepository talks to the /competences resource.
type HTTPCompetencyRepository struct {
	client *backend.Client
}

func NewHTTPCompetencyRepository(client *backend.Client) *HTTPCompetencyRepository {
	return &HTTPCompetencyRepository{client: client}
}

func (r *HTTPCompetencyRepository) List(ctx context.Context) ([]Competency, error) {
	var out []Competency
	if err := r.client.Get(ctx, "/competences", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPCompetencyRepository) Create(ctx context.Context, c *Competency) error {
	return r.client.Post(ctx, "/competences", c, c)
}
