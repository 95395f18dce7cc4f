package repository

import (
	"github.com/quizforge/quizforge/internal/model"
	"gorm.io/gorm"
)

type TagRepository interface {
	GetOrCreate(name string) (*model.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetOrCreate(name string) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.Where(model.Tag{Name: name}).FirstOrCreate(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}
