package risk

import "context"

// Repository defines access to the risk register on the upstream
// backend.
type Repository interface {
	List(ctx context.Context) ([]Risk, error)
	GetByID(ctx context.Context, id string) (*Risk, error)
	Create(ctx context.Context, r *Risk) error
	Update(ctx context.Context, r *Risk) error
}
