package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Answer is one selectable option of a single- or multiple-choice question.
type Answer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID `json:"question_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_answer_question_text"`
	Text       string    `json:"text" gorm:"size:1024;not null;uniqueIndex:idx_answer_question_text"`
	IsCorrect  bool      `json:"is_correct" gorm:"not null;default:false"`
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
