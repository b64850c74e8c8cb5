package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyflow/internal/model"
	"surveyflow/internal/repository"
)

var responseCols = []string{"id", "survey_id", "user_id", "items", "submitted_at"}

func TestResponsePostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewResponsePostgres(db)
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	resp := &model.SurveyResponse{
		ID:       "r1",
		SurveyID: "feedback",
		Responses: []model.ResponseItem{
			{QuestionID: "q1", QuestionLabel: "Name", Value: "Alice"},
		},
		SubmittedAt: at,
	}

	mock.ExpectExec("INSERT INTO survey_responses").
		WithArgs("r1", "feedback", "", []byte(`[{"questionId":"q1","questionLabel":"Name","value":"Alice"}]`), at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(context.Background(), resp))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResponsePostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewResponsePostgres(db)
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM survey_responses").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM survey_responses ORDER BY").
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(responseCols).
			AddRow("r1", "feedback", "u1", []byte(`[{"questionId":"q2","questionLabel":"Topics","value":["ui","price"]}]`), at))

	res, err := repo.List(context.Background(), repository.PageQuery{Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "u1", res.Items[0].UserID)
	assert.Equal(t, []any{"ui", "price"}, res.Items[0].Responses[0].Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResponsePostgres_ListBySurvey(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewResponsePostgres(db)
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM survey_responses WHERE survey_id = ?").
		WithArgs("feedback").
		WillReturnRows(sqlmock.NewRows(responseCols).
			AddRow("r2", "feedback", "", []byte(`[]`), at.Add(time.Hour)).
			AddRow("r1", "feedback", "", []byte(`[]`), at))

	got, err := repo.ListBySurvey(context.Background(), "feedback")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "r2", got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResponsePostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewResponsePostgres(db)

	mock.ExpectExec("DELETE FROM survey_responses WHERE id = ?").
		WithArgs("r9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "r9"), repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResponsePostgres_Stats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewResponsePostgres(db)
	early := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	late := early.Add(48 * time.Hour)

	t.Run("aggregates", func(t *testing.T) {
		mock.ExpectQuery("SELECT survey_id, COUNT\\(\\*\\), MAX\\(submitted_at\\)").
			WillReturnRows(sqlmock.NewRows([]string{"survey_id", "count", "max"}).
				AddRow("feedback", 3, early).
				AddRow("onboarding", 2, late))

		st, err := repo.Stats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 5, st.TotalResponses)
		assert.Equal(t, map[string]int{"feedback": 3, "onboarding": 2}, st.SurveyCounts)
		require.NotNil(t, st.LastSubmission)
		assert.Equal(t, late, *st.LastSubmission)
	})

	t.Run("empty", func(t *testing.T) {
		mock.ExpectQuery("SELECT survey_id, COUNT\\(\\*\\), MAX\\(submitted_at\\)").
			WillReturnRows(sqlmock.NewRows([]string{"survey_id", "count", "max"}))

		st, err := repo.Stats(context.Background())

		require.NoError(t, err)
		assert.Zero(t, st.TotalResponses)
		assert.Empty(t, st.SurveyCounts)
		assert.Nil(t, st.LastSubmission)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
