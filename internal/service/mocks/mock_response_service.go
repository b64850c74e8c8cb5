package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"surveyflow/internal/model"
	"surveyflow/internal/service"
)

type MockResponseService struct {
	mock.Mock
}

func (m *MockResponseService) Submit(ctx context.Context, surveyID string, answers map[string]any, userID string) (*model.SurveyResponse, error) {
	args := m.Called(ctx, surveyID, answers, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SurveyResponse), args.Error(1)
}

func (m *MockResponseService) List(ctx context.Context, limit, offset int) (*service.ResponseListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ResponseListResult), args.Error(1)
}

func (m *MockResponseService) ListBySurvey(ctx context.Context, surveyID string) ([]model.SurveyResponse, error) {
	args := m.Called(ctx, surveyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SurveyResponse), args.Error(1)
}

func (m *MockResponseService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockResponseService) Statistics(ctx context.Context) (*model.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Statistics), args.Error(1)
}
