package importer

import (
	"strings"
	"testing"
)

func intp(n int) *int { return &n }

func validQuiz() *QuizFile {
	return &QuizFile{
		Scope:    "Biology Basics",
		Category: "Science",
		Questions: []QuizQuestion{
			{
				QuestionText:   "Which organelle produces ATP?",
				Type:           "single-choice",
				Options:        []string{"Mitochondrion", "Nucleus", "Ribosome"},
				CorrectAnswers: []int{0},
			},
			{
				QuestionText:   "Which of these are organelles?",
				Type:           "multiple-choice",
				Options:        []string{"Mitochondrion", "Golgi apparatus", "Protein"},
				CorrectAnswers: []int{0, 1},
			},
			{
				QuestionText:    "Explain osmosis.",
				Type:            "open-ended",
				GradingCriteria: "Mentions membrane and concentration gradient.",
				MaxPoints:       intp(5),
			},
		},
	}
}

func TestValidateAcceptsValidFile(t *testing.T) {
	if errs := Validate(validQuiz()); len(errs) != 0 {
		t.Errorf("valid file produced errors: %v", errs)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*QuizFile)
		want   string
	}{
		{
			name:   "missing scope",
			mutate: func(q *QuizFile) { q.Scope = "" },
			want:   "'scope'",
		},
		{
			name:   "missing category",
			mutate: func(q *QuizFile) { q.Category = "" },
			want:   "'category'",
		},
		{
			name:   "empty questions",
			mutate: func(q *QuizFile) { q.Questions = nil },
			want:   "'questions'",
		},
		{
			name:   "missing question text",
			mutate: func(q *QuizFile) { q.Questions[0].QuestionText = "" },
			want:   "'questionText'",
		},
		{
			name:   "missing type",
			mutate: func(q *QuizFile) { q.Questions[0].Type = "" },
			want:   "'type'",
		},
		{
			name:   "unknown type",
			mutate: func(q *QuizFile) { q.Questions[0].Type = "true-false" },
			want:   "invalid question type",
		},
		{
			name:   "too few options",
			mutate: func(q *QuizFile) { q.Questions[0].Options = []string{"only one"} },
			want:   "at least 2",
		},
		{
			name:   "no correct answers",
			mutate: func(q *QuizFile) { q.Questions[0].CorrectAnswers = nil },
			want:   "'correctAnswers'",
		},
		{
			name:   "single-choice with two correct",
			mutate: func(q *QuizFile) { q.Questions[0].CorrectAnswers = []int{0, 1} },
			want:   "exactly 1",
		},
		{
			name:   "correct index out of range",
			mutate: func(q *QuizFile) { q.Questions[0].CorrectAnswers = []int{7} },
			want:   "out of range",
		},
		{
			name:   "negative correct index",
			mutate: func(q *QuizFile) { q.Questions[1].CorrectAnswers = []int{-1} },
			want:   "out of range",
		},
		{
			name:   "open-ended without criteria",
			mutate: func(q *QuizFile) { q.Questions[2].GradingCriteria = "" },
			want:   "'gradingCriteria'",
		},
		{
			name:   "open-ended without max points",
			mutate: func(q *QuizFile) { q.Questions[2].MaxPoints = nil },
			want:   "'maxPoints'",
		},
		{
			name:   "open-ended with zero max points",
			mutate: func(q *QuizFile) { q.Questions[2].MaxPoints = intp(0) },
			want:   "'maxPoints'",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quiz := validQuiz()
			tc.mutate(quiz)
			errs := Validate(quiz)
			if len(errs) == 0 {
				t.Fatal("expected at least one validation error")
			}
			found := false
			for _, err := range errs {
				if strings.Contains(err.Error(), tc.want) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("no error mentions %q, got %v", tc.want, errs)
			}
		})
	}
}

// All violations are collected in one pass, not just the first.
func TestValidateCollectsAllViolations(t *testing.T) {
	quiz := validQuiz()
	quiz.Scope = ""
	quiz.Questions[0].QuestionText = ""
	quiz.Questions[2].GradingCriteria = ""

	if errs := Validate(quiz); len(errs) < 3 {
		t.Errorf("got %d errors, want at least 3: %v", len(errs), errs)
	}
}
