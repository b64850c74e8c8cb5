package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"surveyflow/internal/model"
	"surveyflow/internal/repository"
)

type MockWorkflowRepository struct {
	mock.Mock
}

func (m *MockWorkflowRepository) Create(ctx context.Context, doc *model.WorkflowDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockWorkflowRepository) FindByID(ctx context.Context, id string) (*model.WorkflowDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WorkflowDocument), args.Error(1)
}

func (m *MockWorkflowRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.WorkflowDocument], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.WorkflowDocument]), args.Error(1)
}

func (m *MockWorkflowRepository) Update(ctx context.Context, doc *model.WorkflowDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockWorkflowRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorkflowRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
