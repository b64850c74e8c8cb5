package repository

import (
	"context"

	"surveyflow/internal/model"
)

// ResponseRepository persists submitted survey responses.
type ResponseRepository interface {
	Create(ctx context.Context, r *model.SurveyResponse) error

	// List returns responses across all surveys, newest first.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.SurveyResponse], error)

	// ListBySurvey returns every response for surveyID, newest first.
	ListBySurvey(ctx context.Context, surveyID string) ([]model.SurveyResponse, error)

	// Delete returns ErrNotFound when no response has id.
	Delete(ctx context.Context, id string) error

	// Stats aggregates response counts per survey and the latest submission time.
	// WorkflowDocuments is left zero.
	Stats(ctx context.Context) (*model.Statistics, error)
}
