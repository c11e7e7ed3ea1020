package qhsedoc

import (
	"context"

	"github.com/hospiops/facilityhub/internal/platform/backend"
)

// HTTPRepository talks to the /documents resource of the facility
// backend.
type HTTPRepository struct {
	client *backend.Client
}

func NewHTTPRepository(client *backend.Client) *HTTPRepository {
	return &HTTPRepository{client: client}
}

func (r *HTTPRepository) List(ctx context.Context) ([]QHSEDocument, error) {
	var out []QHSEDocument
	if err := r.client.Get(ctx, "/documents", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPRepository) GetByID(ctx context.Context, id string) (*QHSEDocument, error) {
	var doc QHSEDocument
	if err := r.client.Get(ctx, "/documents/"+id, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *HTTPRepository) Create(ctx context.Context, doc *QHSEDocument) error {
	return r.client.Post(ctx, "/documents", doc, doc)
}

func (r *HTTPRepository) Update(ctx context.Context, doc *QHSEDocument) error {
	return r.client.Put(ctx, "/documents/"+doc.ID, doc, doc)
}
