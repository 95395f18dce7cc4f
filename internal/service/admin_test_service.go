package service

import (
	"fmt"

	"github.com/quizforge/quizforge/internal/apperr"
	"github.com/quizforge/quizforge/internal/dto"
	"github.com/quizforge/quizforge/internal/model"
	"github.com/quizforge/quizforge/internal/repository"
	"github.com/rs/zerolog/log"
)

// AdminTestService creates tests administratively, outside the offline
// import path.
type AdminTestService interface {
	CreateTest(req dto.TestCreateDTO) (*dto.TestResponseDTO, error)
}

type adminTestService struct {
	testRepo     repository.TestRepository
	categoryRepo repository.CategoryRepository
	tagRepo      repository.TagRepository
}

func NewAdminTestService(
	testRepo repository.TestRepository,
	categoryRepo repository.CategoryRepository,
	tagRepo repository.TagRepository,
) AdminTestService {
	return &adminTestService{testRepo: testRepo, categoryRepo: categoryRepo, tagRepo: tagRepo}
}

func (s *adminTestService) CreateTest(req dto.TestCreateDTO) (*dto.TestResponseDTO, error) {
	questions := make([]model.Question, 0, len(req.Questions))
	for i, qDto := range req.Questions {
		q, err := buildQuestion(qDto, s.tagRepo)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeValidationError, fmt.Sprintf("question %d is invalid", i+1), err)
		}
		questions = append(questions, *q)
	}

	var categories []model.Category
	for _, name := range req.Categories {
		category, err := s.categoryRepo.GetOrCreate(name)
		if err != nil {
			log.Error().Err(err).Str("category", name).Msg("CreateTest: failed to resolve category")
			return nil, fmt.Errorf("error resolving category %q: %w", name, err)
		}
		categories = append(categories, *category)
	}

	test := model.Test{
		Title:       req.Title,
		Description: req.Description,
		Categories:  categories,
		Questions:   questions,
	}
	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateTest: failed to create test")
		return nil, fmt.Errorf("database error creating test: %w", err)
	}

	resp := dto.TestResponseDTO{
		ID:          test.ID.String(),
		Title:       test.Title,
		Description: test.Description,
		Questions:   len(test.Questions),
		CreatedAt:   test.CreatedAt,
	}
	for _, c := range test.Categories {
		resp.Categories = append(resp.Categories, c.Name)
	}
	return &resp, nil
}

// buildQuestion validates one inbound question against its type's contract
// and resolves its tags.
func buildQuestion(qDto dto.QuestionCreateDTO, tagRepo repository.TagRepository) (*model.Question, error) {
	qType := model.QuestionType(qDto.Type)
	if !qType.Valid() {
		return nil, fmt.Errorf("unknown question type %q", qDto.Type)
	}

	question := model.Question{
		Text:        qDto.Text,
		Type:        qType,
		Image:       qDto.Image,
		Explanation: qDto.Explanation,
	}

	if qType.IsClosed() {
		if len(qDto.Answers) < 2 {
			return nil, fmt.Errorf("choice questions need at least 2 answer options")
		}
		correct := 0
		for _, a := range qDto.Answers {
			if a.IsCorrect {
				correct++
			}
			question.Answers = append(question.Answers, model.Answer{Text: a.Text, IsCorrect: a.IsCorrect})
		}
		if correct == 0 {
			return nil, fmt.Errorf("at least one answer must be marked correct")
		}
		if qType == model.SingleChoice && correct != 1 {
			return nil, fmt.Errorf("single-choice questions must have exactly one correct answer, got %d", correct)
		}
	} else {
		if qDto.GradingCriteria == nil || *qDto.GradingCriteria == "" || qDto.MaxPoints == nil || *qDto.MaxPoints < 1 {
			return nil, fmt.Errorf("open-ended questions require grading_criteria and a positive max_points")
		}
		question.GradingCriteria = qDto.GradingCriteria
		question.MaxPoints = qDto.MaxPoints
	}

	for _, tagName := range qDto.Tags {
		tag, err := tagRepo.GetOrCreate(tagName)
		if err != nil {
			return nil, fmt.Errorf("error resolving tag %q: %w", tagName, err)
		}
		question.Tags = append(question.Tags, *tag)
	}
	return &question, nil
}
