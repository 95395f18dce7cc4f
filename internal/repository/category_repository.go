package repository

import (
	"github.com/quizforge/quizforge/internal/model"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	GetOrCreate(name string) (*model.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetOrCreate(name string) (*model.Category, error) {
	var category model.Category
	err := r.db.Where(model.Category{Name: name}).FirstOrCreate(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}
