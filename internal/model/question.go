package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionType string

const (
	SingleChoice   QuestionType = "single-choice"
	MultipleChoice QuestionType = "multiple-choice"
	OpenEnded      QuestionType = "open-ended"
)

// IsClosed reports whether the question carries answer options.
func (t QuestionType) IsClosed() bool {
	return t == SingleChoice || t == MultipleChoice
}

func (t QuestionType) Valid() bool {
	return t == SingleChoice || t == MultipleChoice || t == OpenEnded
}

type Question struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TestID uuid.UUID `json:"test_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_question_test_text"`
	Text   string    `json:"text" gorm:"type:text;not null;uniqueIndex:idx_question_test_text"`
	// Image holds an optional URL to a picture shown with the question.
	Image       *string      `json:"image,omitempty" gorm:"size:1024"`
	Explanation string       `json:"explanation" gorm:"type:text"`
	Type        QuestionType `json:"question_type" gorm:"not null;default:'single-choice'"`
	// GradingCriteria and MaxPoints are only meaningful for open-ended questions.
	GradingCriteria *string  `json:"grading_criteria,omitempty" gorm:"type:text"`
	MaxPoints       *int     `json:"max_points,omitempty"`
	Tags            []Tag    `json:"tags,omitempty" gorm:"many2many:question_tags"`
	Answers         []Answer `json:"answers,omitempty" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
