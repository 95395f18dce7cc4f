package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	Tests       []Test    `json:"tests,omitempty" gorm:"many2many:test_categories"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
