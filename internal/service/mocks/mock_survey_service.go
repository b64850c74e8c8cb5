package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"surveyflow/internal/form"
	"surveyflow/internal/model"
)

type MockSurveyService struct {
	mock.Mock
}

func (m *MockSurveyService) surveyResult(args mock.Arguments) (*model.Survey, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Survey), args.Error(1)
}

func (m *MockSurveyService) List(ctx context.Context) ([]model.Survey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Survey), args.Error(1)
}

func (m *MockSurveyService) Get(ctx context.Context, id string) (*model.Survey, error) {
	return m.surveyResult(m.Called(ctx, id))
}

func (m *MockSurveyService) Create(ctx context.Context, s *model.Survey) (*model.Survey, error) {
	return m.surveyResult(m.Called(ctx, s))
}

func (m *MockSurveyService) Update(ctx context.Context, id string, s *model.Survey) (*model.Survey, error) {
	return m.surveyResult(m.Called(ctx, id, s))
}

func (m *MockSurveyService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSurveyService) Duplicate(ctx context.Context, id, newID string) (*model.Survey, error) {
	return m.surveyResult(m.Called(ctx, id, newID))
}

func (m *MockSurveyService) Import(ctx context.Context, text string) (*model.Survey, error) {
	return m.surveyResult(m.Called(ctx, text))
}

func (m *MockSurveyService) Export(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockSurveyService) ExportURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, id, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockSurveyService) Check(text string) ([]string, error) {
	args := m.Called(text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSurveyService) Fields(ctx context.Context, id string) ([]form.Field, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]form.Field), args.Error(1)
}

func (m *MockSurveyService) SeedSample(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}
