package dto

import "time"

// AnswerCreateDTO is one option of a choice question in an admin create
// request.
type AnswerCreateDTO struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionCreateDTO is used within TestCreateDTO for admin test creation.
type QuestionCreateDTO struct {
	Text            string            `json:"text" binding:"required"`
	Type            string            `json:"type" binding:"required,oneof=single-choice multiple-choice open-ended"`
	Image           *string           `json:"image"`
	Explanation     string            `json:"explanation"`
	Tags            []string          `json:"tags"`
	Answers         []AnswerCreateDTO `json:"answers" binding:"omitempty,dive"`
	GradingCriteria *string           `json:"grading_criteria"`
	MaxPoints       *int              `json:"max_points"`
}

// TestCreateDTO is for admin to create a new test with all its questions.
type TestCreateDTO struct {
	Title       string              `json:"title" binding:"required"`
	Description *string             `json:"description"`
	Categories  []string            `json:"categories"`
	Questions   []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

type TestResponseDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Categories  []string  `json:"categories,omitempty"`
	Questions   int       `json:"question_count"`
	CreatedAt   time.Time `json:"created_at"`
}
