package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"surveyflow/internal/model"
	"surveyflow/internal/service"
	serviceMocks "surveyflow/internal/service/mocks"
	"surveyflow/internal/workflow"
)

func newWorkflowApp(svc service.WorkflowService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	RegisterRoutes(app, Deps{
		Surveys:   new(serviceMocks.MockSurveyService),
		Responses: new(serviceMocks.MockResponseService),
		Workflows: svc,
	})
	return app
}

func purchaseOrder(status model.DocumentStatus, current int) *model.WorkflowDocument {
	return &model.WorkflowDocument{
		ID:          "doc-1",
		Title:       "Purchase order",
		Content:     "Ten laptops for the new team.",
		Status:      status,
		CurrentStep: current,
		Steps: []model.WorkflowStep{
			{ID: "st-1", Name: "Manager", Assignee: "alice", Status: model.StepCompleted},
			{ID: "st-2", Name: "Finance", Assignee: "bob", Status: model.StepInProgress},
		},
	}
}

func TestListWorkflows(t *testing.T) {
	mockSvc := new(serviceMocks.MockWorkflowService)
	app := newWorkflowApp(mockSvc)

	t.Run("success", func(t *testing.T) {
		res := &service.WorkflowListResult{Items: []model.WorkflowDocument{*purchaseOrder(model.DocumentReview, 2)}, Total: 1}
		mockSvc.On("List", mock.Anything, 10, 0).Return(res, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/workflows", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result service.WorkflowListResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
	})

	t.Run("invalid limit", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/workflows?limit=abc", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_LIMIT", decodeError(t, resp).Error.Code)
	})

	mockSvc.AssertExpectations(t)
}

func TestCreateWorkflow(t *testing.T) {
	mockSvc := new(serviceMocks.MockWorkflowService)
	app := newWorkflowApp(mockSvc)

	t.Run("created", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(d model.WorkflowDocument) bool {
			return d.Title == "Purchase order" && len(d.Steps) == 2 && d.Steps[1].Assignee == "bob"
		})).Return(purchaseOrder(model.DocumentDraft, 1), nil).Once()

		body := `{"title":"Purchase order","content":"Ten laptops for the new team.","status":"draft",
			"steps":[{"name":"Manager","assignee":"alice","status":"pending"},{"name":"Finance","assignee":"bob","status":"pending"}]}`
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/workflows", body))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("validation failed", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).
			Return(nil, &service.ValidationError{Violations: []string{"at least one step is required"}}).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/workflows", `{"title":"PO"}`))

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
		assert.Equal(t, []string{"at least one step is required"}, body.Error.Violations)
	})

	mockSvc.AssertExpectations(t)
}

func TestGetUpdateDeleteWorkflow(t *testing.T) {
	mockSvc := new(serviceMocks.MockWorkflowService)
	app := newWorkflowApp(mockSvc)

	t.Run("get", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "doc-1").Return(purchaseOrder(model.DocumentReview, 2), nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/workflows/doc-1", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var doc model.WorkflowDocument
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
		assert.Equal(t, 2, doc.CurrentStep)
	})

	t.Run("get missing", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "nope").Return(nil, service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/workflows/nope", nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("update", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, "doc-1", mock.MatchedBy(func(p service.WorkflowPatch) bool {
			return p.Title != nil && *p.Title == "Purchase order v2" && p.Content == nil && p.Status == nil
		})).Return(purchaseOrder(model.DocumentReview, 2), nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/workflows/doc-1", `{"title":"Purchase order v2"}`))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("delete", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, "doc-1").Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/workflows/doc-1", nil))
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}

func TestStepTransitions(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		setupMocks func(m *serviceMocks.MockWorkflowService)
		wantStatus int
		wantCode   string
	}{
		{
			name:   "approve",
			target: "/workflows/doc-1/steps/1/approve",
			setupMocks: func(m *serviceMocks.MockWorkflowService) {
				m.On("Approve", mock.Anything, "doc-1", 1).Return(purchaseOrder(model.DocumentApproved, 2), nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "approve finished step",
			target: "/workflows/doc-1/steps/0/approve",
			setupMocks: func(m *serviceMocks.MockWorkflowService) {
				m.On("Approve", mock.Anything, "doc-1", 0).
					Return(nil, &workflow.TransitionError{Kind: workflow.ErrStepTerminal, Step: 0}).Once()
			},
			wantStatus: http.StatusConflict,
			wantCode:   "INVALID_TRANSITION",
		},
		{
			name:   "reject unknown step",
			target: "/workflows/doc-1/steps/9/reject",
			setupMocks: func(m *serviceMocks.MockWorkflowService) {
				m.On("Reject", mock.Anything, "doc-1", 9).Return(nil, workflow.ErrStepNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:   "reject",
			target: "/workflows/doc-1/steps/1/reject",
			setupMocks: func(m *serviceMocks.MockWorkflowService) {
				m.On("Reject", mock.Anything, "doc-1", 1).Return(purchaseOrder(model.DocumentRejected, 2), nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "comment",
			target: "/workflows/doc-1/steps/1/comments",
			body:   `{"text":"Please attach the quote."}`,
			setupMocks: func(m *serviceMocks.MockWorkflowService) {
				m.On("Comment", mock.Anything, "doc-1", 1, "Please attach the quote.").
					Return(purchaseOrder(model.DocumentReview, 2), nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "blank comment",
			target: "/workflows/doc-1/steps/1/comments",
			body:   `{"text":"  "}`,
			setupMocks: func(m *serviceMocks.MockWorkflowService) {
				m.On("Comment", mock.Anything, "doc-1", 1, "  ").Return(nil, service.ErrCommentRequired).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "COMMENT_REQUIRED",
		},
		{
			name:       "step index is not a number",
			target:     "/workflows/doc-1/steps/first/approve",
			setupMocks: func(m *serviceMocks.MockWorkflowService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_STEP_INDEX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(serviceMocks.MockWorkflowService)
			tt.setupMocks(mockSvc)

			body := tt.body
			if body == "" {
				body = "{}"
			}
			resp, _ := newWorkflowApp(mockSvc).Test(jsonRequest(http.MethodPost, tt.target, body))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, resp).Error.Code)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}
