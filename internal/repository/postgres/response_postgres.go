package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"surveyflow/internal/model"
	"surveyflow/internal/repository"
)

// ResponsePostgres stores survey responses in the survey_responses table with
// the answered items encoded as JSONB.
type ResponsePostgres struct {
	db *sql.DB
}

func NewResponsePostgres(db *sql.DB) *ResponsePostgres {
	return &ResponsePostgres{db: db}
}

var _ repository.ResponseRepository = (*ResponsePostgres)(nil)

const responseColumns = `id, survey_id, user_id, items, submitted_at`

func (r *ResponsePostgres) Create(ctx context.Context, resp *model.SurveyResponse) error {
	items := resp.Responses
	if items == nil {
		items = []model.ResponseItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	const q = `
		INSERT INTO survey_responses (` + responseColumns + `)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.db.ExecContext(ctx, q, resp.ID, resp.SurveyID, resp.UserID, b, resp.SubmittedAt)
	return err
}

func (r *ResponsePostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.SurveyResponse], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM survey_responses`).Scan(&total); err != nil {
		return nil, err
	}

	const q = `
		SELECT ` + responseColumns + `
		FROM survey_responses
		ORDER BY submitted_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	items, err := collectResponses(rows)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.SurveyResponse]{Items: items, Total: total}, nil
}

func (r *ResponsePostgres) ListBySurvey(ctx context.Context, surveyID string) ([]model.SurveyResponse, error) {
	const q = `
		SELECT ` + responseColumns + `
		FROM survey_responses
		WHERE survey_id = $1
		ORDER BY submitted_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, surveyID)
	if err != nil {
		return nil, err
	}
	return collectResponses(rows)
}

func (r *ResponsePostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM survey_responses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *ResponsePostgres) Stats(ctx context.Context) (*model.Statistics, error) {
	const q = `
		SELECT survey_id, COUNT(*), MAX(submitted_at)
		FROM survey_responses
		GROUP BY survey_id
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	st := &model.Statistics{SurveyCounts: map[string]int{}}
	for rows.Next() {
		var (
			surveyID string
			count    int
			last     time.Time
		)
		if err := rows.Scan(&surveyID, &count, &last); err != nil {
			return nil, err
		}
		st.SurveyCounts[surveyID] = count
		st.TotalResponses += count
		if st.LastSubmission == nil || last.After(*st.LastSubmission) {
			st.LastSubmission = &last
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return st, nil
}

func collectResponses(rows *sql.Rows) ([]model.SurveyResponse, error) {
	defer rows.Close()

	out := make([]model.SurveyResponse, 0)
	for rows.Next() {
		var (
			resp  model.SurveyResponse
			items []byte
		)
		if err := rows.Scan(&resp.ID, &resp.SurveyID, &resp.UserID, &items, &resp.SubmittedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &resp.Responses); err != nil {
			return nil, fmt.Errorf("decode items of %s: %w", resp.ID, err)
		}
		out = append(out, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
