package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"surveyflow/internal/model"
	"surveyflow/internal/repository"
)

type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) Create(ctx context.Context, r *model.SurveyResponse) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockResponseRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.SurveyResponse], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.SurveyResponse]), args.Error(1)
}

func (m *MockResponseRepository) ListBySurvey(ctx context.Context, surveyID string) ([]model.SurveyResponse, error) {
	args := m.Called(ctx, surveyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SurveyResponse), args.Error(1)
}

func (m *MockResponseRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockResponseRepository) Stats(ctx context.Context) (*model.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Statistics), args.Error(1)
}
