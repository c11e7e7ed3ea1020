package booking

import "context"

// Repository is the reservation store exposed by the facility backend.
type Repository interface {
	List(ctx context.Context) ([]Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	Create(ctx context.Context, b *Booking) error
	Update(ctx context.Context, b *Booking) error
}
