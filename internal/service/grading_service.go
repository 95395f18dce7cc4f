package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quizforge/quizforge/internal/apperr"
	"github.com/quizforge/quizforge/internal/dto"
	"github.com/quizforge/quizforge/internal/taskstore"
	"github.com/rs/zerolog/log"
)

// gradingTimeout bounds a single background scoring call.
const gradingTimeout = 2 * time.Minute

// GradingService dispatches answers for asynchronous AI scoring and serves
// the polled task state.
type GradingService interface {
	// Dispatch validates the request, records a pending task and returns
	// its identifier without waiting for the score.
	Dispatch(ctx context.Context, req dto.GradeRequestDTO) (string, error)
	Result(ctx context.Context, taskID string) (*dto.GradeStatusDTO, error)
}

type gradingService struct {
	grader  AnswerGrader
	tasks   taskstore.Store
	timeout time.Duration
}

func NewGradingService(grader AnswerGrader, tasks taskstore.Store) GradingService {
	return &gradingService{grader: grader, tasks: tasks, timeout: gradingTimeout}
}

func (s *gradingService) Dispatch(ctx context.Context, req dto.GradeRequestDTO) (string, error) {
	if req.UserAnswer == "" || req.GradingCriteria == "" || req.QuestionText == "" || req.MaxPoints <= 0 {
		return "", apperr.New(apperr.CodeMissingParameters,
			"userAnswer, gradingCriteria, questionText and maxPoints are all required")
	}
	if !s.grader.Available() {
		return "", apperr.New(apperr.CodeAIServiceUnavailable,
			"the AI grading service is not configured on this server")
	}

	taskID := uuid.NewString()
	if err := s.tasks.Put(ctx, taskstore.Task{ID: taskID, Status: taskstore.StatusPending}); err != nil {
		log.Error().Err(err).Str("taskID", taskID).Msg("Dispatch: failed to record pending task")
		return "", err
	}

	go s.runGrading(taskID, GradeInput{
		UserAnswer:      req.UserAnswer,
		GradingCriteria: req.GradingCriteria,
		QuestionText:    req.QuestionText,
		MaxPoints:       req.MaxPoints,
	})

	log.Info().Str("taskID", taskID).Msg("Grading task dispatched")
	return taskID, nil
}

// runGrading drives one task through running → succeeded/failed. A failed
// task is terminal; there is no automatic retry.
func (s *gradingService) runGrading(taskID string, in GradeInput) {
	// This goroutine runs outside gin's Recovery middleware; a panic here
	// must fail the task, not the process.
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("taskID", taskID).Interface("panic", r).Msg("runGrading: panic during grading")
			s.putTerminal(taskstore.Task{
				ID:     taskID,
				Status: taskstore.StatusFailed,
				Error:  fmt.Sprintf("internal grading failure: %v", r),
			})
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.tasks.Put(ctx, taskstore.Task{ID: taskID, Status: taskstore.StatusRunning}); err != nil {
		log.Error().Err(err).Str("taskID", taskID).Msg("runGrading: failed to mark task running")
	}

	outcome, err := s.grader.Grade(ctx, in)
	if err != nil {
		log.Error().Err(err).Str("taskID", taskID).Msg("runGrading: grading failed")
		s.putTerminal(taskstore.Task{ID: taskID, Status: taskstore.StatusFailed, Error: err.Error()})
		return
	}

	s.putTerminal(taskstore.Task{
		ID:     taskID,
		Status: taskstore.StatusSucceeded,
		Data:   &taskstore.Result{Score: outcome.Score, Feedback: outcome.Feedback},
	})
	log.Info().Str("taskID", taskID).Int("score", outcome.Score).Msg("Grading task completed")
}

// putTerminal records a final task state under its own deadline; the
// grading context may already be expired by the time the call that used it
// gives up.
func (s *gradingService) putTerminal(task taskstore.Task) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.tasks.Put(ctx, task); err != nil {
		log.Error().Err(err).Str("taskID", task.ID).Msg("runGrading: failed to record terminal state")
	}
}

func (s *gradingService) Result(ctx context.Context, taskID string) (*dto.GradeStatusDTO, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if errors.Is(err, taskstore.ErrNotFound) {
		return nil, apperr.New(apperr.CodeNotFound, "no grading task with the given identifier")
	}
	if err != nil {
		log.Error().Err(err).Str("taskID", taskID).Msg("Result: task lookup failed")
		return nil, err
	}

	status := &dto.GradeStatusDTO{
		Status: string(task.Status),
		TaskID: task.ID,
		Error:  task.Error,
	}
	if task.Data != nil {
		status.Data = &dto.GradeResultDTO{Score: task.Data.Score, Feedback: task.Data.Feedback}
	}
	return status, nil
}
