package dto

// QuestionDTO is the de-identified question shape served to test takers.
// Options and CorrectAnswers are present only for choice questions;
// GradingCriteria and MaxPoints only for open-ended ones. CorrectAnswers
// indexes into Options after shuffling.
type QuestionDTO struct {
	ID              string   `json:"id"`
	QuestionText    string   `json:"questionText"`
	Image           *string  `json:"image,omitempty"`
	Type            string   `json:"type"`
	Tags            []string `json:"tags"`
	Options         []string `json:"options,omitempty"`
	CorrectAnswers  []int    `json:"correctAnswers,omitempty"`
	Explanation     string   `json:"explanation"`
	GradingCriteria *string  `json:"gradingCriteria,omitempty"`
	MaxPoints       *int     `json:"maxPoints,omitempty"`
}
