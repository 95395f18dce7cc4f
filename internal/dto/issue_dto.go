package dto

import "time"

// ReportIssueDTO is a user-submitted problem report.
type ReportIssueDTO struct {
	Question           string   `json:"question" binding:"required"`
	Test               string   `json:"test" binding:"required"`
	IssueType          string   `json:"issue_type" binding:"required,oneof=QUESTION_ERROR AI_GRADING_ERROR"`
	Description        *string  `json:"description"`
	AIFeedbackSnapshot *string  `json:"ai_feedback_snapshot"`
	UserAnswerOpen     *string  `json:"user_answer_open"`
	UserAnswerChoices  []string `json:"user_answer_choices"`
}

type ReportedIssueDTO struct {
	ID                 string    `json:"id"`
	QuestionID         string    `json:"question_id"`
	TestID             string    `json:"test_id"`
	IssueType          string    `json:"issue_type"`
	Description        *string   `json:"description,omitempty"`
	AIFeedbackSnapshot *string   `json:"ai_feedback_snapshot,omitempty"`
	UserAnswerOpen     *string   `json:"user_answer_open,omitempty"`
	UserAnswerChoices  []string  `json:"user_answer_choices,omitempty"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

// IssueStatusUpdateDTO is the admin-only status transition request.
type IssueStatusUpdateDTO struct {
	Status string `json:"status" binding:"required,oneof=NEW IN_PROGRESS RESOLVED REJECTED"`
}
