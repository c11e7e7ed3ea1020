package qhsedoc

import "context"

// Repository defines access to the documentary base on the upstream
// backend.
type Repository interface {
	List(ctx context.Context) ([]QHSEDocument, error)
	GetByID(ctx context.Context, id string) (*QHSEDocument, error)
	Create(ctx context.Context, doc *QHSEDocument) error
	Update(ctx context.Context, doc *QHSEDocument) error
}
