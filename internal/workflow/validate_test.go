package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"surveyflow/internal/model"
)

func TestValidate(t *testing.T) {
	valid := model.WorkflowDocument{
		Title:   "Budget plan",
		Content: "Quarterly budget for the platform team.",
		Steps: []model.WorkflowStep{
			{Name: "Finance", Assignee: "Kim"},
			{Name: "CFO", Assignee: "Lee", Status: model.StepPending},
		},
	}
	assert.Empty(t, Validate(valid))

	tests := []struct {
		name   string
		mutate func(d *model.WorkflowDocument)
		want   []string
	}{
		{
			name:   "short title and content",
			mutate: func(d *model.WorkflowDocument) { d.Title = " ab "; d.Content = "too short" },
			want:   []string{"title must be at least 3 characters", "content must be at least 10 characters"},
		},
		{
			name:   "unknown document status",
			mutate: func(d *model.WorkflowDocument) { d.Status = "archived" },
			want:   []string{`unknown status "archived"`},
		},
		{
			name:   "no steps",
			mutate: func(d *model.WorkflowDocument) { d.Steps = nil },
			want:   []string{"at least one step is required"},
		},
		{
			name: "bad step",
			mutate: func(d *model.WorkflowDocument) {
				d.Steps = []model.WorkflowStep{{Name: "X", Assignee: "", Status: "done"}}
			},
			want: []string{
				"step 1: name must be at least 2 characters",
				"step 1: assignee must be at least 2 characters",
				`step 1: unknown status "done"`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			d.Steps = append([]model.WorkflowStep(nil), valid.Steps...)
			tt.mutate(&d)
			assert.Equal(t, tt.want, Validate(d))
		})
	}
}

func TestValidateComment(t *testing.T) {
	assert.Nil(t, ValidateComment("looks good"))
	assert.Nil(t, ValidateComment("承認済"))
	assert.Equal(t, []string{"comment must be at least 3 characters"}, ValidateComment(" ok "))
}
