package repository

import (
	"github.com/google/uuid"
	"github.com/quizforge/quizforge/internal/model"
	"gorm.io/gorm"
)

type ReportedIssueRepository interface {
	Create(issue *model.ReportedIssue) error
	FindByID(id uuid.UUID) (*model.ReportedIssue, error)
	FindAll(status *model.IssueStatus) ([]model.ReportedIssue, error)
	UpdateStatus(id uuid.UUID, status model.IssueStatus) error
}

type reportedIssueRepository struct {
	db *gorm.DB
}

func NewReportedIssueRepository(db *gorm.DB) ReportedIssueRepository {
	return &reportedIssueRepository{db: db}
}

func (r *reportedIssueRepository) Create(issue *model.ReportedIssue) error {
	return r.db.Create(issue).Error
}

func (r *reportedIssueRepository) FindByID(id uuid.UUID) (*model.ReportedIssue, error) {
	var issue model.ReportedIssue
	if err := r.db.First(&issue, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *reportedIssueRepository) FindAll(status *model.IssueStatus) ([]model.ReportedIssue, error) {
	var issues []model.ReportedIssue
	query := r.db.Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Find(&issues).Error
	return issues, err
}

func (r *reportedIssueRepository) UpdateStatus(id uuid.UUID, status model.IssueStatus) error {
	return r.db.Model(&model.ReportedIssue{}).Where("id = ?", id).Update("status", status).Error
}
