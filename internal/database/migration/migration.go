// Package migration creates the PostgreSQL schema for workflow documents and
// survey responses. Survey definitions live in object storage and need none.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type step struct {
	Name string
	SQL  string
}

// sentinelTable is created last; its presence means every step already ran.
const sentinelTable = "public.survey_responses"

var steps = []step{
	{
		Name: "create_table_workflow_documents",
		SQL: `CREATE TABLE IF NOT EXISTS workflow_documents (
  id           TEXT        PRIMARY KEY,
  title        TEXT        NOT NULL,
  content      TEXT        NOT NULL DEFAULT '',
  status       TEXT        NOT NULL CHECK (status IN ('draft', 'review', 'approved', 'rejected')),
  current_step INTEGER     NOT NULL CHECK (current_step >= 1),
  steps        JSONB       NOT NULL DEFAULT '[]'::jsonb,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_workflow_documents_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_workflow_documents_status ON workflow_documents (status);`,
	},
	{
		Name: "create_index_workflow_documents_updated_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_workflow_documents_updated_at ON workflow_documents (updated_at);`,
	},
	{
		Name: "create_table_survey_responses",
		SQL: `CREATE TABLE IF NOT EXISTS survey_responses (
  id           TEXT        PRIMARY KEY,
  survey_id    TEXT        NOT NULL,
  user_id      TEXT        NOT NULL DEFAULT '',
  items        JSONB       NOT NULL DEFAULT '[]'::jsonb,
  submitted_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_survey_responses_survey_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_survey_responses_survey_id ON survey_responses (survey_id);`,
	},
}

// EnsureMigrated runs every schema step unless the sentinel table exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))
	log.Info("db_migration_check")

	var exists bool
	err := db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", sentinelTable).Scan(&exists)
	if err != nil {
		log.Error("db_migration_failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}
	if exists {
		log.Info("db_migration_skip", zap.Duration("duration", time.Since(start)))
		return nil
	}

	for _, s := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, s.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("migration_step", s.Name),
				zap.Error(err),
				zap.Duration("step_duration", time.Since(stepStart)),
			)
			return fmt.Errorf("migration step %s failed: %w", s.Name, err)
		}
		log.Info("db_migration_step",
			zap.String("migration_step", s.Name),
			zap.Duration("step_duration", time.Since(stepStart)),
		)
	}

	log.Info("db_migration_success", zap.Int("steps", len(steps)), zap.Duration("duration", time.Since(start)))
	return nil
}
