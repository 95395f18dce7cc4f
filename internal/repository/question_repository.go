package repository

import (
	"github.com/google/uuid"
	"github.com/quizforge/quizforge/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	FindByID(id uuid.UUID) (*model.Question, error)
	// FindByTestIDs returns the union of questions belonging to any of the
	// given tests, with answers and tags preloaded.
	FindByTestIDs(testIDs []uuid.UUID) ([]model.Question, error)
	CountAnswersByTest(testID uuid.UUID) (int64, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindByID(id uuid.UUID) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByTestIDs(testIDs []uuid.UUID) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.
		Preload("Answers").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name ASC")
		}).
		Where("test_id IN ?", testIDs).
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) CountAnswersByTest(testID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.Model(&model.Answer{}).
		Joins("JOIN questions ON questions.id = answers.question_id").
		Where("questions.test_id = ?", testID).
		Count(&n).Error
	return n, err
}
