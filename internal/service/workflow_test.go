package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"surveyflow/internal/model"
	"surveyflow/internal/repository"
	repoMocks "surveyflow/internal/repository/mocks"
	"surveyflow/internal/workflow"
)

func newTestWorkflowService(t *testing.T, repo repository.WorkflowRepository) (WorkflowService, *WorkflowMetrics) {
	t.Helper()
	metrics, err := NewWorkflowMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	n := 0
	machine := workflow.NewMachine(
		workflow.WithClock(func() time.Time { return fixedNow }),
		workflow.WithIDGenerator(func() string { n++; return fmt.Sprint(n) }),
	)
	return NewWorkflowService(repo, machine, metrics, zap.NewNop()), metrics
}

// reviewDoc is a three step document waiting on its second step.
func reviewDoc() *model.WorkflowDocument {
	return &model.WorkflowDocument{
		ID:          "doc-1",
		Title:       "Product plan",
		Content:     "Plan for the next product line.",
		Status:      model.DocumentReview,
		CurrentStep: 2,
		Steps: []model.WorkflowStep{
			{ID: "s1", Name: "Planning", Assignee: "Tanaka", Status: model.StepCompleted},
			{ID: "s2", Name: "Engineering", Assignee: "Sato", Status: model.StepInProgress},
			{ID: "s3", Name: "Board", Assignee: "Yamada", Status: model.StepPending},
		},
	}
}

func TestWorkflowService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockWorkflowRepository)
		mRepo.On("Create", ctx, mock.MatchedBy(func(d *model.WorkflowDocument) bool {
			return d.ID == "doc-1" && d.CurrentStep == 1 && d.Steps[0].Status == model.StepInProgress
		})).Return(nil)
		svc, _ := newTestWorkflowService(t, mRepo)

		got, err := svc.Create(ctx, model.WorkflowDocument{
			Title:   "Policy change",
			Content: "Flexible hours for everyone.",
			Steps:   []model.WorkflowStep{{Name: "HR", Assignee: "Suzuki"}, {Name: "Legal", Assignee: "Takahashi"}},
		})

		require.NoError(t, err)
		assert.Equal(t, model.DocumentDraft, got.Status)
		assert.Equal(t, "step-2", got.Steps[0].ID)
		assert.Equal(t, model.StepPending, got.Steps[1].Status)
		assert.Equal(t, fixedNow, got.CreatedAt)
		mRepo.AssertExpectations(t)
	})

	t.Run("invalid", func(t *testing.T) {
		mRepo := new(repoMocks.MockWorkflowRepository)
		svc, _ := newTestWorkflowService(t, mRepo)

		_, err := svc.Create(ctx, model.WorkflowDocument{Title: "x"})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Violations, "at least one step is required")
		mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestWorkflowService_Approve(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		step       int
		setupMocks func(mRepo *repoMocks.MockWorkflowRepository)
		wantErr    error
		wantErrMsg string
		check      func(t *testing.T, d *model.WorkflowDocument)
	}{
		{
			name: "advances to the next step",
			step: 1,
			setupMocks: func(mRepo *repoMocks.MockWorkflowRepository) {
				mRepo.On("FindByID", ctx, "doc-1").Return(reviewDoc(), nil)
				mRepo.On("Update", ctx, mock.AnythingOfType("*model.WorkflowDocument")).Return(nil)
			},
			check: func(t *testing.T, d *model.WorkflowDocument) {
				assert.Equal(t, 3, d.CurrentStep)
				assert.Equal(t, model.StepCompleted, d.Steps[1].Status)
				assert.Equal(t, model.StepInProgress, d.Steps[2].Status)
				assert.Equal(t, model.DocumentReview, d.Status)
			},
		},
		{
			name: "out of turn is refused and not stored",
			step: 2,
			setupMocks: func(mRepo *repoMocks.MockWorkflowRepository) {
				mRepo.On("FindByID", ctx, "doc-1").Return(reviewDoc(), nil)
			},
			wantErr: workflow.ErrInvalidTransition,
		},
		{
			name: "unknown step",
			step: 7,
			setupMocks: func(mRepo *repoMocks.MockWorkflowRepository) {
				mRepo.On("FindByID", ctx, "doc-1").Return(reviewDoc(), nil)
			},
			wantErr: workflow.ErrStepNotFound,
		},
		{
			name: "missing document",
			step: 0,
			setupMocks: func(mRepo *repoMocks.MockWorkflowRepository) {
				mRepo.On("FindByID", ctx, "doc-1").Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "store failure",
			step: 1,
			setupMocks: func(mRepo *repoMocks.MockWorkflowRepository) {
				mRepo.On("FindByID", ctx, "doc-1").Return(reviewDoc(), nil)
				mRepo.On("Update", ctx, mock.Anything).Return(errors.New("db down"))
			},
			wantErrMsg: "update workflow: db down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockWorkflowRepository)
			tt.setupMocks(mRepo)
			svc, _ := newTestWorkflowService(t, mRepo)

			got, err := svc.Approve(ctx, "doc-1", tt.step)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
				assert.Nil(t, got)
			default:
				require.NoError(t, err)
				tt.check(t, got)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestWorkflowService_ApproveLastStep(t *testing.T) {
	ctx := context.Background()
	doc := reviewDoc()
	doc.CurrentStep = 3
	doc.Steps[1].Status = model.StepCompleted
	doc.Steps[2].Status = model.StepInProgress

	mRepo := new(repoMocks.MockWorkflowRepository)
	mRepo.On("FindByID", ctx, "doc-1").Return(doc, nil)
	mRepo.On("Update", ctx, doc).Return(nil)
	svc, metrics := newTestWorkflowService(t, mRepo)

	got, err := svc.Approve(ctx, "doc-1", 2)

	require.NoError(t, err)
	assert.Equal(t, model.DocumentApproved, got.Status)
	assert.Equal(t, 3, got.CurrentStep)
	assert.Equal(t, &fixedNow, got.Steps[2].CompletedAt)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.transitions.WithLabelValues("approve", "applied")))
}

func TestWorkflowService_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects the document", func(t *testing.T) {
		mRepo := new(repoMocks.MockWorkflowRepository)
		mRepo.On("FindByID", ctx, "doc-1").Return(reviewDoc(), nil)
		mRepo.On("Update", ctx, mock.Anything).Return(nil)
		svc, metrics := newTestWorkflowService(t, mRepo)

		got, err := svc.Reject(ctx, "doc-1", 1)

		require.NoError(t, err)
		assert.Equal(t, model.DocumentRejected, got.Status)
		assert.Equal(t, model.StepRejected, got.Steps[1].Status)
		assert.Equal(t, 2, got.CurrentStep)
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.transitions.WithLabelValues("reject", "applied")))
	})

	t.Run("closed document refuses", func(t *testing.T) {
		doc := reviewDoc()
		doc.Status = model.DocumentApproved
		mRepo := new(repoMocks.MockWorkflowRepository)
		mRepo.On("FindByID", ctx, "doc-1").Return(doc, nil)
		svc, metrics := newTestWorkflowService(t, mRepo)

		_, err := svc.Reject(ctx, "doc-1", 1)

		assert.ErrorIs(t, err, workflow.ErrDocumentTerminal)
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.transitions.WithLabelValues("reject", "refused")))
		mRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestWorkflowService_Comment(t *testing.T) {
	ctx := context.Background()

	t.Run("appends trimmed text", func(t *testing.T) {
		mRepo := new(repoMocks.MockWorkflowRepository)
		mRepo.On("FindByID", ctx, "doc-1").Return(reviewDoc(), nil)
		mRepo.On("Update", ctx, mock.Anything).Return(nil)
		svc, _ := newTestWorkflowService(t, mRepo)

		got, err := svc.Comment(ctx, "doc-1", 0, "  Needs a budget breakdown. ")

		require.NoError(t, err)
		assert.Equal(t, []string{"Needs a budget breakdown."}, got.Steps[0].Comments)
	})

	t.Run("blank", func(t *testing.T) {
		svc, _ := newTestWorkflowService(t, new(repoMocks.MockWorkflowRepository))
		_, err := svc.Comment(ctx, "doc-1", 0, "   ")
		assert.ErrorIs(t, err, ErrCommentRequired)
	})

	t.Run("too short", func(t *testing.T) {
		svc, _ := newTestWorkflowService(t, new(repoMocks.MockWorkflowRepository))
		_, err := svc.Comment(ctx, "doc-1", 0, "ok")
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestWorkflowService_Update(t *testing.T) {
	ctx := context.Background()
	title := "Product plan (revised)"

	mRepo := new(repoMocks.MockWorkflowRepository)
	mRepo.On("FindByID", ctx, "doc-1").Return(reviewDoc(), nil)
	mRepo.On("Update", ctx, mock.MatchedBy(func(d *model.WorkflowDocument) bool {
		return d.Title == title && d.UpdatedAt.Equal(fixedNow)
	})).Return(nil)
	svc, _ := newTestWorkflowService(t, mRepo)

	got, err := svc.Update(ctx, "doc-1", WorkflowPatch{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, "Plan for the next product line.", got.Content)
	mRepo.AssertExpectations(t)

	bad := model.DocumentStatus("archived")
	_, err = svc.Update(ctx, "doc-1", WorkflowPatch{Status: &bad})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestWorkflowService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockWorkflowRepository)
	mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
		Return(&repository.PageResult[model.WorkflowDocument]{Items: []model.WorkflowDocument{*reviewDoc()}, Total: 1}, nil)
	mRepo.On("List", ctx, repository.PageQuery{Limit: 100, Offset: 5}).
		Return(&repository.PageResult[model.WorkflowDocument]{Items: []model.WorkflowDocument{}, Total: 1}, nil)
	mRepo.On("Delete", ctx, "doc-1").Return(nil)
	mRepo.On("Delete", ctx, "doc-9").Return(repository.ErrNotFound)
	svc, _ := newTestWorkflowService(t, mRepo)

	res, err := svc.List(ctx, 0, -3)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	_, err = svc.List(ctx, 500, 5)
	require.NoError(t, err)

	assert.NoError(t, svc.Delete(ctx, "doc-1"))
	assert.ErrorIs(t, svc.Delete(ctx, "doc-9"), ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, ""), ErrIDRequired)
	mRepo.AssertExpectations(t)
}
