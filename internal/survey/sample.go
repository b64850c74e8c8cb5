package survey

import "surveyflow/internal/model"

// Sample returns the demo survey seeded into an empty store.
func Sample() *model.Survey {
	satisfaction := []string{"Very satisfied", "Satisfied", "Neutral", "Dissatisfied", "Very dissatisfied"}
	return &model.Survey{
		ID:          "employee-satisfaction-2024",
		Title:       "Employee Satisfaction Survey 2024",
		Description: "A survey about the workplace and job satisfaction. Please answer candidly.",
		Metadata:    &model.Metadata{Created: "2024-01-15", Version: DefaultVersion, Author: "Human Resources"},
		Sections: []model.Section{
			{
				ID:          "basic-info",
				Title:       "Basic information",
				Description: "Tell us a little about yourself first.",
				Questions: []model.Question{
					{
						ID:       "department",
						Type:     model.QuestionSelect,
						Label:    "Department",
						Required: true,
						Options:  []string{"Sales", "Engineering", "Human Resources", "Accounting", "Other"},
					},
					{
						ID:          "years",
						Type:        model.QuestionNumber,
						Label:       "Years of service",
						Required:    true,
						Placeholder: "Enter a number of years",
						Validation:  &model.Validation{Min: model.IntPtr(0), Max: model.IntPtr(50)},
					},
				},
			},
			{
				ID:          "work-environment",
				Title:       "Work environment",
				Description: "Rate your work environment.",
				Questions: []model.Question{
					{ID: "workplace-satisfaction", Type: model.QuestionRadio, Label: "Satisfaction with the workplace", Required: true, Options: satisfaction},
					{ID: "work-life-balance", Type: model.QuestionRadio, Label: "Satisfaction with work-life balance", Required: true, Options: satisfaction},
					{ID: "improvements", Type: model.QuestionTextarea, Label: "Suggested improvements", Placeholder: "Share any concrete suggestions"},
				},
			},
			{
				ID:          "job-satisfaction",
				Title:       "Job satisfaction",
				Description: "Rate your current role.",
				Questions: []model.Question{
					{ID: "job-interest", Type: model.QuestionRadio, Label: "Interest in your work", Required: true, Options: []string{"Very high", "High", "Neutral", "Low", "Very low"}},
					{ID: "growth-opportunity", Type: model.QuestionRadio, Label: "Opportunities to grow", Required: true, Options: []string{"Plenty", "Enough", "Neutral", "Few", "None"}},
					{ID: "future-plans", Type: model.QuestionSelect, Label: "Career plans", Options: []string{"Stay in my role", "Transfer internally", "Change employer", "Start a business", "Undecided"}},
				},
			},
		},
	}
}
