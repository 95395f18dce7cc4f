package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/quizforge/quizforge/internal/apperr"
	"github.com/quizforge/quizforge/internal/dto"
	"github.com/quizforge/quizforge/internal/model"
	"github.com/quizforge/quizforge/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// allowedIssueTransitions is the closed set of administrative status moves.
// RESOLVED and REJECTED are terminal.
var allowedIssueTransitions = map[model.IssueStatus][]model.IssueStatus{
	model.IssueStatusNew:        {model.IssueStatusInProgress, model.IssueStatusResolved, model.IssueStatusRejected},
	model.IssueStatusInProgress: {model.IssueStatusResolved, model.IssueStatusRejected},
}

type IssueService interface {
	Report(req dto.ReportIssueDTO) (*dto.ReportedIssueDTO, error)
	List(status *model.IssueStatus) ([]dto.ReportedIssueDTO, error)
	UpdateStatus(issueID uuid.UUID, status model.IssueStatus) (*dto.ReportedIssueDTO, error)
}

type issueService struct {
	issueRepo    repository.ReportedIssueRepository
	questionRepo repository.QuestionRepository
}

func NewIssueService(issueRepo repository.ReportedIssueRepository, questionRepo repository.QuestionRepository) IssueService {
	return &issueService{issueRepo: issueRepo, questionRepo: questionRepo}
}

func (s *issueService) Report(req dto.ReportIssueDTO) (*dto.ReportedIssueDTO, error) {
	questionID, err := uuid.Parse(req.Question)
	if err != nil {
		return nil, apperr.New(apperr.CodeInvalidParameterFormat, "question must be a valid identifier")
	}
	testID, err := uuid.Parse(req.Test)
	if err != nil {
		return nil, apperr.New(apperr.CodeInvalidParameterFormat, "test must be a valid identifier")
	}

	issueType := model.IssueType(req.IssueType)
	if !issueType.Valid() {
		return nil, apperr.New(apperr.CodeValidationError, fmt.Sprintf("unknown issue type %q", req.IssueType))
	}
	if issueType == model.IssueAIGradingError && (req.AIFeedbackSnapshot == nil || *req.AIFeedbackSnapshot == "") {
		return nil, apperr.New(apperr.CodeValidationError,
			"ai_feedback_snapshot is required for AI_GRADING_ERROR reports")
	}

	question, err := s.questionRepo.FindByID(questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.CodeNotFound, "question not found")
	}
	if err != nil {
		log.Error().Err(err).Str("questionID", questionID.String()).Msg("Report: question lookup failed")
		return nil, fmt.Errorf("error fetching question: %w", err)
	}
	if question.TestID != testID {
		return nil, apperr.New(apperr.CodeValidationError,
			"the reported question does not belong to the given test")
	}

	issue := model.ReportedIssue{
		QuestionID:         questionID,
		TestID:             testID,
		IssueType:          issueType,
		Description:        req.Description,
		AIFeedbackSnapshot: req.AIFeedbackSnapshot,
		UserAnswerOpen:     req.UserAnswerOpen,
		UserAnswerChoices:  req.UserAnswerChoices,
		Status:             model.IssueStatusNew,
	}
	if err := s.issueRepo.Create(&issue); err != nil {
		log.Error().Err(err).Msg("Report: failed to persist issue")
		return nil, fmt.Errorf("error saving issue report: %w", err)
	}

	log.Info().Str("issueID", issue.ID.String()).Str("type", string(issueType)).Msg("Issue reported")
	return issueToDTO(&issue), nil
}

func (s *issueService) List(status *model.IssueStatus) ([]dto.ReportedIssueDTO, error) {
	issues, err := s.issueRepo.FindAll(status)
	if err != nil {
		log.Error().Err(err).Msg("List: failed to fetch issues")
		return nil, fmt.Errorf("error fetching issues: %w", err)
	}
	dtos := make([]dto.ReportedIssueDTO, len(issues))
	for i := range issues {
		dtos[i] = *issueToDTO(&issues[i])
	}
	return dtos, nil
}

func (s *issueService) UpdateStatus(issueID uuid.UUID, status model.IssueStatus) (*dto.ReportedIssueDTO, error) {
	if !status.Valid() {
		return nil, apperr.New(apperr.CodeValidationError, fmt.Sprintf("unknown issue status %q", status))
	}

	issue, err := s.issueRepo.FindByID(issueID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.CodeNotFound, "issue not found")
	}
	if err != nil {
		log.Error().Err(err).Str("issueID", issueID.String()).Msg("UpdateStatus: issue lookup failed")
		return nil, fmt.Errorf("error fetching issue: %w", err)
	}

	if !transitionAllowed(issue.Status, status) {
		return nil, apperr.New(apperr.CodeValidationError,
			fmt.Sprintf("cannot move issue from %s to %s", issue.Status, status))
	}

	if err := s.issueRepo.UpdateStatus(issueID, status); err != nil {
		log.Error().Err(err).Str("issueID", issueID.String()).Msg("UpdateStatus: failed to persist status")
		return nil, fmt.Errorf("error updating issue status: %w", err)
	}
	issue.Status = status
	return issueToDTO(issue), nil
}

func transitionAllowed(from, to model.IssueStatus) bool {
	for _, allowed := range allowedIssueTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func issueToDTO(issue *model.ReportedIssue) *dto.ReportedIssueDTO {
	var out dto.ReportedIssueDTO
	copier.Copy(&out, issue)
	out.ID = issue.ID.String()
	out.QuestionID = issue.QuestionID.String()
	out.TestID = issue.TestID.String()
	out.IssueType = string(issue.IssueType)
	out.Status = string(issue.Status)
	return &out
}
