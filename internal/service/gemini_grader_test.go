package service

import (
	"strings"
	"testing"

	"github.com/quizforge/quizforge/config"
)

func TestParseGradeResponse(t *testing.T) {
	cases := []struct {
		name         string
		raw          string
		maxPoints    int
		wantScore    int
		wantFeedback string
		wantErr      bool
	}{
		{
			name:         "plain json",
			raw:          `{"score": 4, "feedback": "Solid answer."}`,
			maxPoints:    5,
			wantScore:    4,
			wantFeedback: "Solid answer.",
		},
		{
			name:         "json fenced with language tag",
			raw:          "```json\n{\"score\": 3, \"feedback\": \"Partially correct.\"}\n```",
			maxPoints:    5,
			wantScore:    3,
			wantFeedback: "Partially correct.",
		},
		{
			name:         "bare fence",
			raw:          "```\n{\"score\": 5, \"feedback\": \"Perfect.\"}\n```",
			maxPoints:    5,
			wantScore:    5,
			wantFeedback: "Perfect.",
		},
		{
			name:         "surrounding whitespace",
			raw:          "\n\n  {\"score\": 2, \"feedback\": \"Thin.\"}  \n",
			maxPoints:    5,
			wantScore:    2,
			wantFeedback: "Thin.",
		},
		{
			name:         "score above maximum is clamped",
			raw:          `{"score": 12, "feedback": "Overenthusiastic model."}`,
			maxPoints:    5,
			wantScore:    5,
			wantFeedback: "Overenthusiastic model.",
		},
		{
			name:         "negative score is clamped to zero",
			raw:          `{"score": -2, "feedback": "Confused model."}`,
			maxPoints:    5,
			wantScore:    0,
			wantFeedback: "Confused model.",
		},
		{
			name:      "missing score key",
			raw:       `{"feedback": "No score given."}`,
			maxPoints: 5,
			wantErr:   true,
		},
		{
			name:      "missing feedback key",
			raw:       `{"score": 3}`,
			maxPoints: 5,
			wantErr:   true,
		},
		{
			name:      "not json at all",
			raw:       "The answer deserves four points.",
			maxPoints: 5,
			wantErr:   true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseGradeResponse(tc.raw, tc.maxPoints)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parseGradeResponse(%q) succeeded, want error", tc.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseGradeResponse(%q): %v", tc.raw, err)
			}
			if got.Score != tc.wantScore {
				t.Errorf("score = %d, want %d", got.Score, tc.wantScore)
			}
			if got.Feedback != tc.wantFeedback {
				t.Errorf("feedback = %q, want %q", got.Feedback, tc.wantFeedback)
			}
		})
	}
}

func TestBuildGradingPromptCarriesAllInputs(t *testing.T) {
	in := GradeInput{
		UserAnswer:      "Mitochondria produce ATP.",
		GradingCriteria: "Names the organelle and its function.",
		QuestionText:    "What is the powerhouse of the cell?",
		MaxPoints:       3,
	}
	prompt := buildGradingPrompt(in)

	for _, fragment := range []string{in.UserAnswer, in.GradingCriteria, in.QuestionText, "0 to 3", `"score"`, `"feedback"`} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt is missing %q", fragment)
		}
	}
}

func TestGeminiGraderUnavailableWithoutKey(t *testing.T) {
	grader, err := NewGeminiGrader(&config.Config{GeminiModel: "gemini-2.0-flash"})
	if err != nil {
		t.Fatalf("NewGeminiGrader: %v", err)
	}
	if grader.Available() {
		t.Error("grader reports available without an API key")
	}
}
