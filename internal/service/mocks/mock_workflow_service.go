package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"surveyflow/internal/model"
	"surveyflow/internal/service"
)

type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) docResult(args mock.Arguments) (*model.WorkflowDocument, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WorkflowDocument), args.Error(1)
}

func (m *MockWorkflowService) Create(ctx context.Context, partial model.WorkflowDocument) (*model.WorkflowDocument, error) {
	return m.docResult(m.Called(ctx, partial))
}

func (m *MockWorkflowService) Get(ctx context.Context, id string) (*model.WorkflowDocument, error) {
	return m.docResult(m.Called(ctx, id))
}

func (m *MockWorkflowService) List(ctx context.Context, limit, offset int) (*service.WorkflowListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkflowListResult), args.Error(1)
}

func (m *MockWorkflowService) Update(ctx context.Context, id string, patch service.WorkflowPatch) (*model.WorkflowDocument, error) {
	return m.docResult(m.Called(ctx, id, patch))
}

func (m *MockWorkflowService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockWorkflowService) Approve(ctx context.Context, id string, stepIndex int) (*model.WorkflowDocument, error) {
	return m.docResult(m.Called(ctx, id, stepIndex))
}

func (m *MockWorkflowService) Reject(ctx context.Context, id string, stepIndex int) (*model.WorkflowDocument, error) {
	return m.docResult(m.Called(ctx, id, stepIndex))
}

func (m *MockWorkflowService) Comment(ctx context.Context, id string, stepIndex int, text string) (*model.WorkflowDocument, error) {
	return m.docResult(m.Called(ctx, id, stepIndex, text))
}

func (m *MockWorkflowService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
