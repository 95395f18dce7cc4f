package dto

// GradeRequestDTO carries an open-ended answer for asynchronous AI grading.
// All four fields are mandatory.
type GradeRequestDTO struct {
	UserAnswer      string `json:"userAnswer" binding:"required"`
	GradingCriteria string `json:"gradingCriteria" binding:"required"`
	QuestionText    string `json:"questionText" binding:"required"`
	MaxPoints       int    `json:"maxPoints" binding:"required,gt=0"`
}

// GradeDispatchedDTO acknowledges an accepted grading request.
type GradeDispatchedDTO struct {
	TaskID string `json:"task_id"`
}

// GradeResultDTO is the final grading payload: an integer score in
// [0, maxPoints] and natural-language feedback.
type GradeResultDTO struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// GradeStatusDTO is the polling response. Data stays null until the task
// reaches a terminal succeeded state.
type GradeStatusDTO struct {
	Status string          `json:"status"`
	TaskID string          `json:"task_id"`
	Data   *GradeResultDTO `json:"data"`
	Error  string          `json:"error,omitempty"`
}
