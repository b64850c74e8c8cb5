package model

import "time"

// SurveyResponse is one submitted answer set for a survey.
type SurveyResponse struct {
	ID          string         `json:"id"`
	SurveyID    string         `json:"surveyId"`
	Responses   []ResponseItem `json:"responses"`
	SubmittedAt time.Time      `json:"submittedAt"`
	UserID      string         `json:"userId,omitempty"`
}

// ResponseItem is the answer to a single question. Value is a string, a number,
// or a list of strings for checkbox questions.
type ResponseItem struct {
	QuestionID    string `json:"questionId"`
	QuestionLabel string `json:"questionLabel"`
	Value         any    `json:"value"`
}

// Statistics summarizes stored responses and workflow documents.
type Statistics struct {
	TotalResponses    int            `json:"totalResponses"`
	SurveyCounts      map[string]int `json:"surveyCounts"`
	LastSubmission    *time.Time     `json:"lastSubmission"`
	WorkflowDocuments int            `json:"workflowDocuments"`
}
