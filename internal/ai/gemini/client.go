// Package gemini implements the text generation boundary on top of the
// Google GenAI API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/recruitpipe/recruitpipe/internal/ai"
	"github.com/recruitpipe/recruitpipe/internal/logger"
	"github.com/recruitpipe/recruitpipe/internal/recruit"
	"github.com/recruitpipe/recruitpipe/internal/utils"
)

const (
	defaultModel        = "gemini-2.5-pro"
	defaultMaxLogLength = 200
	retryBaseDelay      = 2 * time.Second
)

//go:embed job_description.md
var jobDescriptionTemplate string

//go:embed interview_questions.md
var interviewQuestionsTemplate string

// Generator produces job descriptions and interview question sets via the
// Gemini API. It satisfies ai.Generator.
type Generator struct {
	client     *genai.Client
	modelName  string
	maxRetries int
	maxLogLen  int
	logger     *zap.Logger
}

// NewGenerator creates a Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, maxRetries int, log *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Generator{
		client:     client,
		modelName:  model,
		maxRetries: maxRetries,
		maxLogLen:  defaultMaxLogLength,
		logger:     logger.WithCommonFields(log, "gemini", model),
	}, nil
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

// JobDescription writes a posting description for the opening.
func (g *Generator) JobDescription(ctx context.Context, opening *recruit.JobOpening) (string, error) {
	if opening == nil {
		return "", &ai.ServiceError{Op: "job description", Err: errors.New("opening is required")}
	}

	prompt := buildJobDescriptionPrompt(opening)
	text, err := g.generateContent(ctx, prompt)
	if err != nil {
		return "", &ai.ServiceError{Op: "job description", Err: err}
	}
	return text, nil
}

// InterviewQuestions produces the question set for one interview stage.
func (g *Generator) InterviewQuestions(ctx context.Context, stage recruit.InterviewStage, opening *recruit.JobOpening) ([]string, error) {
	if opening == nil {
		return nil, &ai.ServiceError{Op: "interview questions", Err: errors.New("opening is required")}
	}

	prompt := buildQuestionsPrompt(stage, opening)
	raw, err := g.generateContent(ctx, prompt)
	if err != nil {
		return nil, &ai.ServiceError{Op: "interview questions", Err: err}
	}

	questions := ParseQuestionList(raw)
	if len(questions) == 0 {
		return nil, &ai.ServiceError{Op: "interview questions", Err: errors.New("no questions parsed from response")}
	}
	return questions, nil
}

func buildJobDescriptionPrompt(opening *recruit.JobOpening) string {
	prompt := jobDescriptionTemplate
	prompt = strings.ReplaceAll(prompt, "{{POSITION}}", opening.Title)
	prompt = strings.ReplaceAll(prompt, "{{DEPARTMENT}}", opening.Department)
	prompt = strings.ReplaceAll(prompt, "{{SALARY_RANGE}}", opening.SalaryRange)
	prompt = strings.ReplaceAll(prompt, "{{EXPERIENCE}}", fmt.Sprintf("%d-%d", opening.ExperienceMin, opening.ExperienceMax))
	prompt = strings.ReplaceAll(prompt, "{{SKILLS}}", strings.Join(opening.RequiredSkills, ", "))
	return prompt
}

// stageFocus adds per-stage guidance to the questions prompt.
var stageFocus = map[recruit.InterviewStage]string{
	recruit.StageTechnical: "Focus on technical knowledge, problem-solving scenarios, " +
		"practical experience and technology-specific topics.",
	recruit.StageBehavioral: "Focus on work style, team collaboration, conflict resolution, " +
		"career goals and company values alignment. Prefer behavioral and situational questions.",
}

func buildQuestionsPrompt(stage recruit.InterviewStage, opening *recruit.JobOpening) string {
	prompt := interviewQuestionsTemplate
	prompt = strings.ReplaceAll(prompt, "{{COUNT}}", "6-8")
	prompt = strings.ReplaceAll(prompt, "{{STAGE}}", string(stage))
	prompt = strings.ReplaceAll(prompt, "{{POSITION}}", opening.Title)
	prompt = strings.ReplaceAll(prompt, "{{DEPARTMENT}}", opening.Department)
	prompt = strings.ReplaceAll(prompt, "{{SKILLS}}", strings.Join(opening.RequiredSkills, ", "))
	prompt = strings.ReplaceAll(prompt, "{{FOCUS}}", stageFocus[stage])
	return prompt
}

// generateContent sends the prompt and returns the first textual response,
// retrying transient failures with a linear backoff.
func (g *Generator) generateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	g.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, g.maxLogLen)),
	)

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Debug("retrying gemini request",
				zap.Int("attempt", attempt),
				zap.Error(lastErr),
			)
			if err := utils.WaitFor(ctx, time.Duration(attempt)*retryBaseDelay); err != nil {
				return "", err
			}
		}

		resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}

		output := collectText(resp)
		if output == "" {
			lastErr = errors.New("gemini api returned empty response")
			continue
		}

		g.logger.Debug("gemini generate content response",
			zap.Int("response_length", utf8.RuneCountInString(output)),
			zap.String("response_preview", utils.TruncateForLog(output, g.maxLogLen)),
		)
		return output, nil
	}

	return "", lastErr
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}
	return strings.TrimSpace(builder.String())
}
