package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"surveyflow/internal/model"
	"surveyflow/internal/repository"
)

// WorkflowPostgres stores workflow documents in the workflow_documents table
// with the step list encoded as JSONB.
type WorkflowPostgres struct {
	db *sql.DB
}

func NewWorkflowPostgres(db *sql.DB) *WorkflowPostgres {
	return &WorkflowPostgres{db: db}
}

var _ repository.WorkflowRepository = (*WorkflowPostgres)(nil)

const workflowColumns = `id, title, content, status, current_step, steps, created_at, updated_at`

func (r *WorkflowPostgres) Create(ctx context.Context, doc *model.WorkflowDocument) error {
	steps, err := encodeSteps(doc.Steps)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO workflow_documents (` + workflowColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.ExecContext(ctx, q,
		doc.ID,
		doc.Title,
		doc.Content,
		string(doc.Status),
		doc.CurrentStep,
		steps,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return err
}

func (r *WorkflowPostgres) FindByID(ctx context.Context, id string) (*model.WorkflowDocument, error) {
	const q = `SELECT ` + workflowColumns + ` FROM workflow_documents WHERE id = $1`
	doc, err := scanWorkflow(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *WorkflowPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.WorkflowDocument], error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, err
	}

	const q = `
		SELECT ` + workflowColumns + `
		FROM workflow_documents
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.WorkflowDocument, 0)
	for rows.Next() {
		doc, err := scanWorkflow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.WorkflowDocument]{Items: items, Total: total}, nil
}

func (r *WorkflowPostgres) Update(ctx context.Context, doc *model.WorkflowDocument) error {
	steps, err := encodeSteps(doc.Steps)
	if err != nil {
		return err
	}
	const q = `
		UPDATE workflow_documents
		SET title = $2, content = $3, status = $4, current_step = $5, steps = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q,
		doc.ID,
		doc.Title,
		doc.Content,
		string(doc.Status),
		doc.CurrentStep,
		steps,
		doc.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *WorkflowPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workflow_documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *WorkflowPostgres) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM workflow_documents`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorkflow(s scanner) (*model.WorkflowDocument, error) {
	var (
		d     model.WorkflowDocument
		steps []byte
	)
	if err := s.Scan(
		&d.ID,
		&d.Title,
		&d.Content,
		&d.Status,
		&d.CurrentStep,
		&steps,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(steps, &d.Steps); err != nil {
		return nil, fmt.Errorf("decode steps of %s: %w", d.ID, err)
	}
	return &d, nil
}

func encodeSteps(steps []model.WorkflowStep) ([]byte, error) {
	if steps == nil {
		steps = []model.WorkflowStep{}
	}
	b, err := json.Marshal(steps)
	if err != nil {
		return nil, fmt.Errorf("encode steps: %w", err)
	}
	return b, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
