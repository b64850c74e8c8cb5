package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"surveyflow/internal/model"
	"surveyflow/internal/repository"
	"surveyflow/internal/workflow"
)

// WorkflowListResult is a page of workflow documents.
type WorkflowListResult struct {
	Items []model.WorkflowDocument `json:"data"`
	Total int                      `json:"total"`
}

// WorkflowPatch carries the editable fields of a document. Nil fields are
// left unchanged.
type WorkflowPatch struct {
	Title   *string               `json:"title,omitempty"`
	Content *string               `json:"content,omitempty"`
	Status  *model.DocumentStatus `json:"status,omitempty"`
}

// WorkflowService runs documents through their approval chains and persists
// every applied transition.
type WorkflowService interface {
	Create(ctx context.Context, partial model.WorkflowDocument) (*model.WorkflowDocument, error)
	Get(ctx context.Context, id string) (*model.WorkflowDocument, error)
	List(ctx context.Context, limit, offset int) (*WorkflowListResult, error)
	Update(ctx context.Context, id string, patch WorkflowPatch) (*model.WorkflowDocument, error)
	Delete(ctx context.Context, id string) error

	// Approve, Reject and Comment return the document after the transition.
	// Refused transitions wrap workflow.ErrInvalidTransition or
	// workflow.ErrStepNotFound and leave the stored document untouched.
	Approve(ctx context.Context, id string, stepIndex int) (*model.WorkflowDocument, error)
	Reject(ctx context.Context, id string, stepIndex int) (*model.WorkflowDocument, error)
	Comment(ctx context.Context, id string, stepIndex int, text string) (*model.WorkflowDocument, error)

	Count(ctx context.Context) (int, error)
}

type workflowService struct {
	repo    repository.WorkflowRepository
	machine *workflow.Machine
	metrics *WorkflowMetrics
	log     *zap.Logger
}

// NewWorkflowService constructs a WorkflowService. metrics may be nil.
func NewWorkflowService(repo repository.WorkflowRepository, machine *workflow.Machine, metrics *WorkflowMetrics, log *zap.Logger) WorkflowService {
	return &workflowService{repo: repo, machine: machine, metrics: metrics, log: log}
}

func (s *workflowService) Create(ctx context.Context, partial model.WorkflowDocument) (*model.WorkflowDocument, error) {
	if err := invalid(workflow.Validate(partial)); err != nil {
		return nil, err
	}
	doc := s.machine.Create(partial)
	if err := s.repo.Create(ctx, &doc); err != nil {
		return nil, fmt.Errorf("save workflow: %w", err)
	}
	s.log.Info("workflow created", zap.String("document_id", doc.ID), zap.Int("steps", len(doc.Steps)))
	return &doc, nil
}

func (s *workflowService) Get(ctx context.Context, id string) (*model.WorkflowDocument, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoErr("find workflow", err)
	}
	return doc, nil
}

func (s *workflowService) List(ctx context.Context, limit, offset int) (*WorkflowListResult, error) {
	pq := normalizePage(limit, offset)
	res, err := s.repo.List(ctx, pq)
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}
	return &WorkflowListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *workflowService) Update(ctx context.Context, id string, patch WorkflowPatch) (*model.WorkflowDocument, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		doc.Title = *patch.Title
	}
	if patch.Content != nil {
		doc.Content = *patch.Content
	}
	if patch.Status != nil {
		doc.Status = *patch.Status
	}
	if err := invalid(workflow.Validate(*doc)); err != nil {
		return nil, err
	}
	s.machine.Touch(doc)
	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, repoErr("update workflow", err)
	}
	return doc, nil
}

func (s *workflowService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrIDRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoErr("delete workflow", err)
	}
	s.log.Info("workflow deleted", zap.String("document_id", id))
	return nil
}

func (s *workflowService) Approve(ctx context.Context, id string, stepIndex int) (*model.WorkflowDocument, error) {
	return s.transition(ctx, id, stepIndex, "approve", func(doc *model.WorkflowDocument) error {
		return s.machine.Approve(doc, stepIndex)
	})
}

func (s *workflowService) Reject(ctx context.Context, id string, stepIndex int) (*model.WorkflowDocument, error) {
	return s.transition(ctx, id, stepIndex, "reject", func(doc *model.WorkflowDocument) error {
		return s.machine.Reject(doc, stepIndex)
	})
}

func (s *workflowService) Comment(ctx context.Context, id string, stepIndex int, text string) (*model.WorkflowDocument, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrCommentRequired
	}
	if err := invalid(workflow.ValidateComment(text)); err != nil {
		return nil, err
	}
	return s.transition(ctx, id, stepIndex, "comment", func(doc *model.WorkflowDocument) error {
		return s.machine.Comment(doc, stepIndex, text)
	})
}

func (s *workflowService) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count workflows: %w", err)
	}
	return n, nil
}

// transition loads the document, applies fn and stores the result. Nothing is
// written when fn refuses.
func (s *workflowService) transition(ctx context.Context, id string, stepIndex int, action string, fn func(*model.WorkflowDocument) error) (*model.WorkflowDocument, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	err = fn(doc)
	s.metrics.observe(action, err)
	span := trace.SpanFromContext(ctx)
	span.AddEvent("workflow."+action, trace.WithAttributes(
		attribute.String("workflow.document_id", id),
		attribute.Int("workflow.step", stepIndex),
		attribute.Bool("workflow.applied", err == nil),
	))
	if err != nil {
		s.log.Info("workflow transition refused",
			zap.String("document_id", id),
			zap.String("action", action),
			zap.Int("step", stepIndex),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, repoErr("update workflow", err)
	}
	s.log.Info("workflow transition applied",
		zap.String("document_id", id),
		zap.String("action", action),
		zap.Int("step", stepIndex),
		zap.String("status", string(doc.Status)),
		zap.Int("current_step", doc.CurrentStep),
	)
	return doc, nil
}

func normalizePage(limit, offset int) repository.PageQuery {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return repository.PageQuery{Limit: limit, Offset: offset}
}

func repoErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
