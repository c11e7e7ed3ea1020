package incident

import "context"

// Repository defines access to the incident register on the upstream
// backend.
type Repository interface {
	List(ctx context.Context) ([]Incident, error)
	GetByID(ctx context.Context, id string) (*Incident, error)
	Create(ctx context.Context, inc *Incident) error
	Update(ctx context.Context, inc *Incident) error
}
