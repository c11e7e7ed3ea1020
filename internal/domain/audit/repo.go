package audit

import "context"

// Repository defines access to the audit register on the upstream
// backend.
type Repository interface {
	List(ctx context.Context) ([]Audit, error)
	GetByID(ctx context.Context, id string) (*Audit, error)
	Create(ctx context.Context, a *Audit) error
	Update(ctx context.Context, a *Audit) error
}
