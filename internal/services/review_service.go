package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/jobdeck/jobdeck/internal/models"
)

// Input is truncated before it reaches the model so a pasted novel can't blow
// the prompt budget.
const (
	maxResumeChars = 8000
	maxJobChars    = 6000
)

const reviewSystemPrompt = "You are a concise resume coach for interns/new-grads. " +
	"Return clean Markdown with bullet points. Be specific to the provided resume text and avoid generic fluff."

// ReviewService proxies resume review requests to Gemini.
type ReviewService struct {
	Client    llms.Model
	MaxTokens int
}

// NewReviewService initializes the Gemini client. The caller decides what to
// do without an API key; the rest of the app works fine with AI disabled.
func NewReviewService(ctx context.Context, apiKey, model string, maxTokens int) (*ReviewService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("review service: missing API key")
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("review service: create Gemini client: %w", err)
	}
	return &ReviewService{Client: llm, MaxTokens: maxTokens}, nil
}

// ReviewResume sends the resume (and optional job posting) to the model and
// returns the generated review text.
func (s *ReviewService) ReviewResume(ctx context.Context, resume, jobText string) (string, error) {
	resume = strings.TrimSpace(truncate(resume, maxResumeChars))
	jobText = strings.TrimSpace(truncate(jobText, maxJobChars))
	if resume == "" {
		return "", fmt.Errorf("%w: resume text is required", models.ErrValidation)
	}

	var b strings.Builder
	b.WriteString("Task: Resume Review (optimize for ATS + impact)\n\n")
	b.WriteString("Resume:\n```\n" + resume + "\n```\n\n")
	if jobText != "" {
		b.WriteString("Job Posting:\n```\n" + jobText + "\n```\n\n")
	}
	b.WriteString("Return exactly:\n")
	b.WriteString("1) **Top 5 Fixes** — specific, resume-aware, short bullets.\n")
	b.WriteString("2) **ATS Keywords** — from the job (if provided) + obvious gaps.\n")
	b.WriteString("3) **3 Rewritten Bullets** — quantified, active verbs, STAR-style.\n")

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, reviewSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, b.String()),
	}

	resp, err := s.Client.GenerateContent(ctx, content,
		llms.WithMaxTokens(s.MaxTokens),
		llms.WithTemperature(0.35),
	)
	if err != nil {
		return "", fmt.Errorf("review service: generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("review service: empty model response")
	}
	return resp.Choices[0].Content, nil
}

// truncate cuts s to at most n bytes, backing up so it never splits a
// multi-byte rune mid-sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
