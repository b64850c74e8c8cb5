package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"surveyflow/internal/form"
	"surveyflow/internal/model"
	"surveyflow/internal/repository"
)

// ResponseListResult is a page of survey responses.
type ResponseListResult struct {
	Items []model.SurveyResponse `json:"data"`
	Total int                    `json:"total"`
}

// ResponseService records answers to surveys and summarizes them.
type ResponseService interface {
	// Submit binds answers (keyed by question id) against the survey and
	// stores the result. Answers breaking a question rule yield a
	// *ValidationError and nothing is stored.
	Submit(ctx context.Context, surveyID string, answers map[string]any, userID string) (*model.SurveyResponse, error)
	List(ctx context.Context, limit, offset int) (*ResponseListResult, error)
	ListBySurvey(ctx context.Context, surveyID string) ([]model.SurveyResponse, error)
	Delete(ctx context.Context, id string) error
	Statistics(ctx context.Context) (*model.Statistics, error)
}

type responseService struct {
	repo      repository.ResponseRepository
	surveys   SurveyService
	workflows WorkflowService
	log       *zap.Logger
	now       func() time.Time
	newID     func() string
}

// NewResponseService constructs a ResponseService.
func NewResponseService(repo repository.ResponseRepository, surveys SurveyService, workflows WorkflowService, log *zap.Logger) ResponseService {
	return &responseService{
		repo:      repo,
		surveys:   surveys,
		workflows: workflows,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

func (s *responseService) Submit(ctx context.Context, surveyID string, answers map[string]any, userID string) (*model.SurveyResponse, error) {
	sv, err := s.surveys.Get(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	resp, violations := form.Bind(sv, answers, s.now())
	if err := invalid(violations); err != nil {
		return nil, err
	}
	resp.ID = s.newID()
	resp.UserID = strings.TrimSpace(userID)

	if err := s.repo.Create(ctx, &resp); err != nil {
		return nil, fmt.Errorf("save response: %w", err)
	}
	s.log.Info("response submitted",
		zap.String("response_id", resp.ID),
		zap.String("survey_id", resp.SurveyID),
		zap.Int("answers", len(resp.Responses)),
	)
	return &resp, nil
}

func (s *responseService) List(ctx context.Context, limit, offset int) (*ResponseListResult, error) {
	res, err := s.repo.List(ctx, normalizePage(limit, offset))
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	return &ResponseListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *responseService) ListBySurvey(ctx context.Context, surveyID string) ([]model.SurveyResponse, error) {
	if strings.TrimSpace(surveyID) == "" {
		return nil, ErrIDRequired
	}
	out, err := s.repo.ListBySurvey(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	return out, nil
}

func (s *responseService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrIDRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoErr("delete response", err)
	}
	return nil
}

func (s *responseService) Statistics(ctx context.Context) (*model.Statistics, error) {
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("response stats: %w", err)
	}
	n, err := s.workflows.Count(ctx)
	if err != nil {
		return nil, err
	}
	st.WorkflowDocuments = n
	return st, nil
}
