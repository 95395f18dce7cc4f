package service

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"
	"github.com/quizforge/quizforge/internal/apperr"
	"github.com/quizforge/quizforge/internal/dto"
	"github.com/quizforge/quizforge/internal/model"
	"github.com/quizforge/quizforge/internal/repository"
	"github.com/rs/zerolog/log"
)

// SelectionMode filters the eligible question pool by type.
type SelectionMode string

const (
	ModeOpen   SelectionMode = "open"
	ModeClosed SelectionMode = "closed"
	ModeMixed  SelectionMode = "mixed"
)

func ParseSelectionMode(s string) (SelectionMode, error) {
	switch SelectionMode(s) {
	case ModeOpen, ModeClosed, ModeMixed:
		return SelectionMode(s), nil
	}
	return "", apperr.New(apperr.CodeInvalidModeParameter,
		fmt.Sprintf("mode must be one of 'open', 'closed' or 'mixed', got %q", s))
}

// QuestionSelectionService draws a randomized, answer-shuffled question set
// from a union of tests.
type QuestionSelectionService interface {
	SelectQuestions(testIDs []uuid.UUID, count int, mode SelectionMode) ([]dto.QuestionDTO, error)
}

type questionSelectionService struct {
	questionRepo repository.QuestionRepository
	// newRand builds a fresh generator per request so concurrent selections
	// never share random state.
	newRand func() *rand.Rand
}

func NewQuestionSelectionService(questionRepo repository.QuestionRepository) QuestionSelectionService {
	return &questionSelectionService{questionRepo: questionRepo, newRand: newSeededRand}
}

// NewQuestionSelectionServiceWithRand injects the generator factory; tests
// pass a fixed seed to assert exact shuffles.
func NewQuestionSelectionServiceWithRand(questionRepo repository.QuestionRepository, newRand func() *rand.Rand) QuestionSelectionService {
	return &questionSelectionService{questionRepo: questionRepo, newRand: newRand}
}

func newSeededRand() *rand.Rand {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// Should not happen; the generator still has to be usable.
		log.Error().Err(err).Msg("crypto seed unavailable, falling back to zero seed")
	}
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(b[:]))))
}

func (s *questionSelectionService) SelectQuestions(testIDs []uuid.UUID, count int, mode SelectionMode) ([]dto.QuestionDTO, error) {
	if len(testIDs) == 0 || count < 1 {
		return nil, apperr.New(apperr.CodeMissingParameters, "test identifiers and a positive question count are required")
	}

	pool, err := s.questionRepo.FindByTestIDs(testIDs)
	if err != nil {
		log.Error().Err(err).Msg("SelectQuestions: failed to load question pool")
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}

	filtered := filterByMode(pool, mode)
	if len(filtered) == 0 {
		return nil, apperr.New(apperr.CodeNoQuestionsFound,
			fmt.Sprintf("no questions found for the selected tests in mode '%s'", mode))
	}

	// Over-large requests are clamped, never rejected.
	if count > len(filtered) {
		count = len(filtered)
	}

	rng := s.newRand()

	// A random permutation prefix is a uniform sample without replacement,
	// already in random presentation order, so no test is favored by size
	// and the output order carries no information about the source.
	selected := make([]dto.QuestionDTO, 0, count)
	for _, idx := range rng.Perm(len(filtered))[:count] {
		q := filtered[idx]
		serialized, err := serializeQuestion(&q, rng)
		if err != nil {
			log.Error().Err(err).Str("questionID", q.ID.String()).Msg("SelectQuestions: question failed serialization")
			return nil, apperr.Wrap(apperr.CodeSerializationError, "failed to serialize selected questions", err)
		}
		selected = append(selected, *serialized)
	}

	return selected, nil
}

func filterByMode(pool []model.Question, mode SelectionMode) []model.Question {
	if mode == ModeMixed {
		return pool
	}
	var filtered []model.Question
	for _, q := range pool {
		if (mode == ModeOpen && q.Type == model.OpenEnded) || (mode == ModeClosed && q.Type.IsClosed()) {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

// serializeQuestion maps a question to its output contract. For choice
// questions it shuffles the options and rebuilds the correct indices from
// the correctness flags, so the set of answer texts marked correct is
// unchanged by the shuffle. Contract violations here mean corrupted data,
// not bad input.
func serializeQuestion(q *model.Question, rng *rand.Rand) (*dto.QuestionDTO, error) {
	out := &dto.QuestionDTO{
		ID:           q.ID.String(),
		QuestionText: q.Text,
		Image:        q.Image,
		Type:         string(q.Type),
		Tags:         tagNames(q.Tags),
		Explanation:  q.Explanation,
	}

	if !q.Type.IsClosed() {
		if q.Type != model.OpenEnded {
			return nil, fmt.Errorf("unknown question type %q", q.Type)
		}
		if q.GradingCriteria == nil || q.MaxPoints == nil {
			return nil, fmt.Errorf("open-ended question %s is missing grading criteria or max points", q.ID)
		}
		out.GradingCriteria = q.GradingCriteria
		out.MaxPoints = q.MaxPoints
		return out, nil
	}

	if len(q.Answers) < 2 {
		return nil, fmt.Errorf("choice question %s has %d options, need at least 2", q.ID, len(q.Answers))
	}

	shuffled := make([]model.Answer, len(q.Answers))
	copy(shuffled, q.Answers)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	options := make([]string, len(shuffled))
	var correct []int
	for i, a := range shuffled {
		options[i] = a.Text
		if a.IsCorrect {
			correct = append(correct, i)
		}
	}
	sort.Ints(correct)

	switch {
	case len(correct) == 0:
		return nil, fmt.Errorf("choice question %s has no correct option", q.ID)
	case q.Type == model.SingleChoice && len(correct) != 1:
		return nil, fmt.Errorf("single-choice question %s has %d correct options", q.ID, len(correct))
	}

	out.Options = options
	out.CorrectAnswers = correct
	return out, nil
}

func tagNames(tags []model.Tag) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names
}
