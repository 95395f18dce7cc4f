package repository

import (
	"github.com/google/uuid"
	"github.com/quizforge/quizforge/internal/model"
	"gorm.io/gorm"
)

// QuestionTypeCount is one row of the per-test question breakdown.
type QuestionTypeCount struct {
	TestID uuid.UUID
	Type   model.QuestionType
	Count  int
}

type TestRepository interface {
	Create(test *model.Test) error
	FindByID(id uuid.UUID) (*model.Test, error)
	FindByTitle(title string) (*model.Test, error)
	FindAllWithCategories() ([]model.Test, error)
	CountQuestionsByType() ([]QuestionTypeCount, error)
	CountQuestions(testID uuid.UUID) (int64, error)
	DeleteQuestions(testID uuid.UUID) error
	Delete(id uuid.UUID) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(test *model.Test) error {
	// GORM creates associated questions, answers and m2m rows in one go.
	return r.db.Create(test).Error
}

func (r *testRepository) FindByID(id uuid.UUID) (*model.Test, error) {
	var test model.Test
	if err := r.db.First(&test, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByTitle(title string) (*model.Test, error) {
	var test model.Test
	if err := r.db.First(&test, "title = ?", title).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindAllWithCategories() ([]model.Test, error) {
	var tests []model.Test
	err := r.db.
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("categories.name ASC")
		}).
		Order("tests.created_at DESC").
		Find(&tests).Error
	return tests, err
}

func (r *testRepository) CountQuestionsByType() ([]QuestionTypeCount, error) {
	var rows []QuestionTypeCount
	err := r.db.Model(&model.Question{}).
		Select("test_id, type, COUNT(*) AS count").
		Group("test_id, type").
		Scan(&rows).Error
	return rows, err
}

func (r *testRepository) CountQuestions(testID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.Model(&model.Question{}).Where("test_id = ?", testID).Count(&n).Error
	return n, err
}

func (r *testRepository) DeleteQuestions(testID uuid.UUID) error {
	// Answers go with their questions via the FK cascade.
	return r.db.Where("test_id = ?", testID).Delete(&model.Question{}).Error
}

func (r *testRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Test{}, "id = ?", id).Error
}
