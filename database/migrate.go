package database

import (
	"github.com/quizforge/quizforge/internal/model"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every persisted model. Both the
// API server and the offline importer run it on startup, so either can be
// pointed at a fresh database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Category{},
		&model.Tag{},
		&model.Test{},
		&model.Question{},
		&model.Answer{},
		&model.ReportedIssue{},
	)
}
