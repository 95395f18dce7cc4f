package importer

import "fmt"

// QuizQuestion is one question in a quiz input file.
type QuizQuestion struct {
	QuestionText    string   `json:"questionText"`
	Type            string   `json:"type"`
	Tags            []string `json:"tags"`
	Options         []string `json:"options"`
	CorrectAnswers  []int    `json:"correctAnswers"`
	Explanation     string   `json:"explanation"`
	Image           string   `json:"image"`
	GradingCriteria string   `json:"gradingCriteria"`
	MaxPoints       *int     `json:"maxPoints"`
}

// QuizFile is the structured JSON input consumed by the offline importer.
type QuizFile struct {
	Scope       string         `json:"scope"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	Questions   []QuizQuestion `json:"questions"`
}

var validTypes = map[string]bool{
	"single-choice":   true,
	"multiple-choice": true,
	"open-ended":      true,
}

// Validate checks a quiz file against the import contract and returns every
// violation found, so a file can be fixed in one pass.
func Validate(quiz *QuizFile) []error {
	var errs []error

	if quiz.Scope == "" {
		errs = append(errs, fmt.Errorf("missing required key 'scope'"))
	}
	if quiz.Category == "" {
		errs = append(errs, fmt.Errorf("missing required key 'category'"))
	}
	if len(quiz.Questions) == 0 {
		errs = append(errs, fmt.Errorf("missing or empty 'questions' list"))
	}

	for i, q := range quiz.Questions {
		errs = append(errs, validateQuestion(&q, i)...)
	}
	return errs
}

func validateQuestion(q *QuizQuestion, index int) []error {
	var errs []error
	prefix := fmt.Sprintf("question %d", index+1)

	if q.QuestionText == "" {
		errs = append(errs, fmt.Errorf("%s: missing required key 'questionText'", prefix))
	}
	if q.Type == "" {
		errs = append(errs, fmt.Errorf("%s: missing required key 'type'", prefix))
		return errs
	}
	if !validTypes[q.Type] {
		errs = append(errs, fmt.Errorf("%s: invalid question type %q", prefix, q.Type))
		return errs
	}

	switch q.Type {
	case "single-choice", "multiple-choice":
		if len(q.Options) < 2 {
			errs = append(errs, fmt.Errorf("%s: 'options' must list at least 2 entries", prefix))
		}
		if len(q.CorrectAnswers) == 0 {
			errs = append(errs, fmt.Errorf("%s: 'correctAnswers' must be a non-empty list", prefix))
			break
		}
		if q.Type == "single-choice" && len(q.CorrectAnswers) != 1 {
			errs = append(errs, fmt.Errorf("%s: single-choice questions must have exactly 1 correct answer", prefix))
		}
		for _, idx := range q.CorrectAnswers {
			if idx < 0 || idx >= len(q.Options) {
				errs = append(errs, fmt.Errorf("%s: correct answer index %d is out of range", prefix, idx))
			}
		}
	case "open-ended":
		if q.GradingCriteria == "" {
			errs = append(errs, fmt.Errorf("%s: open-ended questions require 'gradingCriteria'", prefix))
		}
		if q.MaxPoints == nil || *q.MaxPoints < 1 {
			errs = append(errs, fmt.Errorf("%s: open-ended questions require a positive 'maxPoints'", prefix))
		}
	}
	return errs
}
