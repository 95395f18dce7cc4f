package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IssueType string

const (
	IssueQuestionError  IssueType = "QUESTION_ERROR"
	IssueAIGradingError IssueType = "AI_GRADING_ERROR"
)

func (t IssueType) Valid() bool {
	return t == IssueQuestionError || t == IssueAIGradingError
}

type IssueStatus string

const (
	IssueStatusNew        IssueStatus = "NEW"
	IssueStatusInProgress IssueStatus = "IN_PROGRESS"
	IssueStatusResolved   IssueStatus = "RESOLVED"
	IssueStatusRejected   IssueStatus = "REJECTED"
)

func (s IssueStatus) Valid() bool {
	switch s {
	case IssueStatusNew, IssueStatusInProgress, IssueStatusResolved, IssueStatusRejected:
		return true
	}
	return false
}

// ReportedIssue is a user-submitted problem report against a question/test
// pair. Created with status NEW; only status changes afterwards, through the
// admin API.
type ReportedIssue struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID  uuid.UUID `json:"question_id" gorm:"type:uuid;not null;index"`
	Question    Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	TestID      uuid.UUID `json:"test_id" gorm:"type:uuid;not null;index"`
	Test        Test      `json:"test,omitempty" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE"`
	IssueType   IssueType `json:"issue_type" gorm:"not null"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	// AIFeedbackSnapshot captures the AI response the user is disputing.
	// Mandatory when IssueType is AI_GRADING_ERROR.
	AIFeedbackSnapshot *string     `json:"ai_feedback_snapshot,omitempty" gorm:"type:text"`
	UserAnswerOpen     *string     `json:"user_answer_open,omitempty" gorm:"type:text"`
	UserAnswerChoices  []string    `json:"user_answer_choices,omitempty" gorm:"serializer:json"`
	Status             IssueStatus `json:"status" gorm:"not null;default:'NEW';index"`
	CreatedAt          time.Time   `json:"created_at"`
}

func (r *ReportedIssue) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
