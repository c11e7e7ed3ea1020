package visitor

import "context"

// Repository is the visitor register exposed by the facility backend.
type Repository interface {
	List(ctx context.Context) ([]Visitor, error)
	GetByID(ctx context.Context, id string) (*Visitor, error)
	Create(ctx context.Context, v *Visitor) error
	Update(ctx context.Context, v *Visitor) error
}
