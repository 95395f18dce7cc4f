package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/quizforge/quizforge/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GradeInput carries everything the scoring model needs for one answer.
type GradeInput struct {
	UserAnswer      string
	GradingCriteria string
	QuestionText    string
	MaxPoints       int
}

type GradeOutcome struct {
	Score    int
	Feedback string
}

// AnswerGrader scores an open-ended answer against its grading criteria.
type AnswerGrader interface {
	// Available reports whether the grader is configured to serve requests.
	Available() bool
	Grade(ctx context.Context, in GradeInput) (*GradeOutcome, error)
}

type geminiGrader struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

// NewGeminiGrader builds the Gemini-backed grader. With no API key the
// grader stays non-functional and dispatches are refused upfront.
func NewGeminiGrader(cfg *config.Config) (AnswerGrader, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Answer grading will be unavailable.")
		return &geminiGrader{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel(cfg.GeminiModel)
	return &geminiGrader{client: model, cfg: cfg}, nil
}

func (g *geminiGrader) Available() bool {
	return g.client != nil
}

func (g *geminiGrader) Grade(ctx context.Context, in GradeInput) (*GradeOutcome, error) {
	if g.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}

	prompt := buildGradingPrompt(in)
	resp, err := g.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during grading")
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	// A blocked generation yields a candidate with nil Content.
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no content")
	}

	fullResponseText := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			fullResponseText += string(txt)
		}
	}
	if fullResponseText == "" {
		return nil, fmt.Errorf("gemini returned no text content")
	}

	outcome, err := parseGradeResponse(fullResponseText, in.MaxPoints)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", fullResponseText).Msg("Failed to parse grading response")
		return nil, err
	}
	return outcome, nil
}

func buildGradingPrompt(in GradeInput) string {
	var b strings.Builder
	b.WriteString("You are a precise and strict teacher grading an answer to a quiz question. ")
	b.WriteString("Evaluate the user's answer strictly against the provided grading criteria.\n\n")
	fmt.Fprintf(&b, "Question: %q\n", in.QuestionText)
	fmt.Fprintf(&b, "Grading criteria: %q\n", in.GradingCriteria)
	fmt.Fprintf(&b, "Maximum points for this question: %d\n", in.MaxPoints)
	fmt.Fprintf(&b, "User's answer: %q\n\n", in.UserAnswer)
	b.WriteString("Tasks:\n")
	fmt.Fprintf(&b, "- Award a number of points from 0 to %d. Be fair but demanding; award nothing for answers that do not address the criteria.\n", in.MaxPoints)
	b.WriteString("- Write a short, one- or two-sentence justification explaining what was right and what was missing.\n\n")
	b.WriteString("Return your evaluation as a perfectly formatted JSON object with no extra characters, comments or markdown. ")
	b.WriteString("It must contain EXACTLY two keys: \"score\" (integer) and \"feedback\" (string).\n")
	return b.String()
}

// parseGradeResponse decodes the model's JSON reply. Models wrap JSON in
// markdown fences often enough that stripping them first is mandatory. A
// missing score or feedback key is a contract violation and fails the task
// rather than defaulting.
func parseGradeResponse(raw string, maxPoints int) (*GradeOutcome, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var payload struct {
		Score    *int    `json:"score"`
		Feedback *string `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("invalid JSON in grading response: %w", err)
	}
	if payload.Score == nil || payload.Feedback == nil {
		return nil, fmt.Errorf("grading response is missing the 'score' or 'feedback' key")
	}

	score := *payload.Score
	if score < 0 {
		score = 0
	}
	if score > maxPoints {
		score = maxPoints
	}
	return &GradeOutcome{Score: score, Feedback: *payload.Feedback}, nil
}
