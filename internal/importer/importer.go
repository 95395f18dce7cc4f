// Package importer loads validated quiz JSON files into the data store.
// Each file is applied atomically; one malformed file never aborts the rest
// of the batch.
package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quizforge/quizforge/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Importer struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Importer {
	return &Importer{db: db}
}

// Report summarizes a directory import plus the post-import verification.
type Report struct {
	FilesTotal    int
	FilesImported int
	FilesFailed   int
	Discrepancies []string
}

// Run imports every *.json file under dir. With clean set, all existing
// quiz content is removed first.
func (im *Importer) Run(dir string, clean bool) (*Report, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%q is not a readable directory", dir)
	}

	if clean {
		log.Warn().Msg("Cleaning existing quiz data before import")
		if err := im.cleanAll(); err != nil {
			return nil, fmt.Errorf("failed to clean existing data: %w", err)
		}
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		log.Warn().Str("dir", dir).Msg("No JSON files found to import")
		return &Report{}, nil
	}

	report := &Report{FilesTotal: len(files)}
	var imported []string
	for _, path := range files {
		if err := im.ImportFile(path); err != nil {
			// Per-file failure: log and continue with the rest.
			log.Error().Err(err).Str("file", filepath.Base(path)).Msg("Import failed for file")
			report.FilesFailed++
			continue
		}
		report.FilesImported++
		imported = append(imported, path)
	}

	// Failed files are already counted; verification covers only what was
	// actually imported.
	report.Discrepancies = im.verify(imported)
	for _, d := range report.Discrepancies {
		log.Error().Msg("Verification: " + d)
	}
	log.Info().
		Int("imported", report.FilesImported).
		Int("failed", report.FilesFailed).
		Int("discrepancies", len(report.Discrepancies)).
		Msg("Import finished")
	return report, nil
}

// ImportFile validates and imports a single quiz file inside one
// transaction, so a partial failure never leaves an orphaned test.
func (im *Importer) ImportFile(path string) error {
	quiz, err := readQuizFile(path)
	if err != nil {
		return err
	}
	if errs := Validate(quiz); len(errs) > 0 {
		return fmt.Errorf("validation failed: %w", errors.Join(errs...))
	}

	title := quiz.Scope
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return im.db.Transaction(func(tx *gorm.DB) error {
		var category model.Category
		if err := tx.Where(model.Category{Name: quiz.Category}).FirstOrCreate(&category).Error; err != nil {
			return fmt.Errorf("failed to resolve category %q: %w", quiz.Category, err)
		}

		description := quiz.Description
		if description == "" {
			description = fmt.Sprintf("Imported from %s.", filepath.Base(path))
		}

		// Re-imports replace the test's questions wholesale.
		var test model.Test
		err := tx.Where("title = ?", title).First(&test).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			test = model.Test{Title: title, Description: &description}
			if err := tx.Create(&test).Error; err != nil {
				return fmt.Errorf("failed to create test %q: %w", title, err)
			}
		case err != nil:
			return fmt.Errorf("failed to look up test %q: %w", title, err)
		default:
			test.Description = &description
			if err := tx.Save(&test).Error; err != nil {
				return fmt.Errorf("failed to update test %q: %w", title, err)
			}
			if err := tx.Where("test_id = ?", test.ID).Delete(&model.Question{}).Error; err != nil {
				return fmt.Errorf("failed to clear questions of %q: %w", title, err)
			}
		}

		if err := tx.Model(&test).Association("Categories").Replace(&category); err != nil {
			return fmt.Errorf("failed to assign category: %w", err)
		}

		tagCache := map[string]model.Tag{}
		for _, qData := range quiz.Questions {
			if err := importQuestion(tx, &test, &qData, tagCache); err != nil {
				return err
			}
		}
		return nil
	})
}

func importQuestion(tx *gorm.DB, test *model.Test, qData *QuizQuestion, tagCache map[string]model.Tag) error {
	question := model.Question{
		TestID:      test.ID,
		Text:        qData.QuestionText,
		Explanation: qData.Explanation,
		Type:        model.QuestionType(qData.Type),
	}
	if qData.Image != "" {
		question.Image = &qData.Image
	}
	if qData.GradingCriteria != "" {
		question.GradingCriteria = &qData.GradingCriteria
	}
	question.MaxPoints = qData.MaxPoints

	if question.Type.IsClosed() {
		correct := make(map[int]bool, len(qData.CorrectAnswers))
		for _, idx := range qData.CorrectAnswers {
			correct[idx] = true
		}
		for i, optText := range qData.Options {
			question.Answers = append(question.Answers, model.Answer{Text: optText, IsCorrect: correct[i]})
		}
	}

	for _, tagName := range qData.Tags {
		tag, ok := tagCache[tagName]
		if !ok {
			if err := tx.Where(model.Tag{Name: tagName}).FirstOrCreate(&tag).Error; err != nil {
				return fmt.Errorf("failed to resolve tag %q: %w", tagName, err)
			}
			tagCache[tagName] = tag
		}
		question.Tags = append(question.Tags, tag)
	}

	if err := tx.Create(&question).Error; err != nil {
		return fmt.Errorf("failed to create question %q: %w", truncate(qData.QuestionText, 60), err)
	}
	return nil
}

// verify compares expected against persisted question and answer counts per
// file. Discrepancies are reported, never raised.
func (im *Importer) verify(files []string) []string {
	var discrepancies []string
	for _, path := range files {
		quiz, err := readQuizFile(path)
		if err != nil {
			continue // already reported during import
		}

		title := quiz.Scope
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}

		expectedQuestions := int64(len(quiz.Questions))
		var expectedAnswers int64
		for _, q := range quiz.Questions {
			if q.Type != "open-ended" {
				expectedAnswers += int64(len(q.Options))
			}
		}

		var test model.Test
		if err := im.db.Where("title = ?", title).First(&test).Error; err != nil {
			discrepancies = append(discrepancies, fmt.Sprintf("test %q not found in store for file %s", title, filepath.Base(path)))
			continue
		}

		var gotQuestions int64
		im.db.Model(&model.Question{}).Where("test_id = ?", test.ID).Count(&gotQuestions)
		var gotAnswers int64
		im.db.Model(&model.Answer{}).
			Joins("JOIN questions ON questions.id = answers.question_id").
			Where("questions.test_id = ?", test.ID).
			Count(&gotAnswers)

		if gotQuestions != expectedQuestions {
			discrepancies = append(discrepancies, fmt.Sprintf("test %q: expected %d questions, store has %d", title, expectedQuestions, gotQuestions))
		}
		if gotAnswers != expectedAnswers {
			discrepancies = append(discrepancies, fmt.Sprintf("test %q: expected %d answers, store has %d", title, expectedAnswers, gotAnswers))
		}
	}
	return discrepancies
}

func (im *Importer) cleanAll() error {
	for _, m := range []any{&model.ReportedIssue{}, &model.Test{}, &model.Category{}, &model.Tag{}} {
		if err := im.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}

func readQuizFile(path string) (*QuizFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var quiz QuizFile
	if err := json.Unmarshal(data, &quiz); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return &quiz, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
