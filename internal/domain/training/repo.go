package training

import "context"

// Repository defines access to trainings and their participations on
// the upstream backend.
type Repository interface {
	List(ctx context.Context) ([]Training, error)
	GetByID(ctx context.Context, id string) (*Training, error)
	Create(ctx context.Context, t *Training) error
	Update(ctx context.Context, t *Training) error
	ListParticipations(ctx context.Context, trainingID string) ([]Participation, error)
	CreateParticipation(ctx context.Context, p *Participation) error
}

// CompetencyRepository defines access to the competency records.
type CompetencyRepository interface {
	List(ctx context.Context) ([]Competency, error)
	Create(ctx context.Context, c *Competency) error
}
