package repository

import (
	"context"

	"surveyflow/internal/model"
)

// WorkflowRepository persists workflow documents keyed by id. Steps are stored
// with their document and always read and written as a whole.
type WorkflowRepository interface {
	// Create inserts doc. It fails if the id is taken.
	Create(ctx context.Context, doc *model.WorkflowDocument) error

	// FindByID returns ErrNotFound when no document has id.
	FindByID(ctx context.Context, id string) (*model.WorkflowDocument, error)

	// List returns documents newest first.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.WorkflowDocument], error)

	// Update replaces the stored document with the same id.
	Update(ctx context.Context, doc *model.WorkflowDocument) error

	// Delete returns ErrNotFound when no document has id.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)
}
