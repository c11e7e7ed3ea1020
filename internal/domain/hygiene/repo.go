package hygiene

import "context"

// CycleRepository is the sterilization register.
type CycleRepository interface {
	List(ctx context.Context) ([]SterilizationCycle, error)
	GetByID(ctx context.Context, id string) (*SterilizationCycle, error)
	Create(ctx context.Context, c *SterilizationCycle) error
	Update(ctx context.Context, c *SterilizationCycle) error
}

// WasteRepository is the medical waste register.
type WasteRepository interface {
	List(ctx context.Context) ([]MedicalWaste, error)
	Create(ctx context.Context, w *MedicalWaste) error
}

// LaundryRepository is the linen movement register.
type LaundryRepository interface {
	List(ctx context.Context) ([]LaundryTracking, error)
	Create(ctx context.Context, l *LaundryTracking) error
}
