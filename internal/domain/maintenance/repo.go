package maintenance

import "context"

// Repository is the task store exposed by the facility backend.
type Repository interface {
	List(ctx context.Context) ([]Task, error)
	GetByID(ctx context.Context, id string) (*Task, error)
	Create(ctx context.Context, t *Task) error
	Update(ctx context.Context, t *Task) error
}

// EquipmentRepository is the biomedical equipment inventory.
type EquipmentRepository interface {
	List(ctx context.Context) ([]Equipment, error)
	GetByID(ctx context.Context, id string) (*Equipment, error)
	Create(ctx context.Context, e *Equipment) error
	Update(ctx context.Context, e *Equipment) error
}
