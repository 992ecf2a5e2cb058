package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/goaltrack/goaltrack/internal/model"
)

// PlanEntry is one month slot of a generated yearly plan.
type PlanEntry struct {
	Month       int    `json:"month"`
	Description string `json:"description"`
}

// FeedbackResult is the verdict returned by the generative backend. The shape
// is whatever the model produced; callers must not assume both fields are set.
type FeedbackResult struct {
	FeedbackText string `json:"feedback_text"`
	FeedbackType string `json:"feedback_type"`
}

// Planner produces monthly plans and progress feedback. Implementations never
// return an error: on any backend failure they fall back to fixed placeholder
// values so user-visible workflows keep working through an outage.
type Planner interface {
	GenerateMonthlyBreakdowns(ctx context.Context, title, description string, year int) []PlanEntry
	GenerateGoalFeedback(ctx context.Context, title, description string, breakdowns []*model.MonthlyBreakdown, currentMonth int) FeedbackResult
}

// AIService talks to an OpenAI-compatible chat completion backend.
type AIService struct {
	client *openai.Client
	model  string
}

func NewAIService(apiKey, model, baseURL string) *AIService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &AIService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// fallbackPlan is returned whenever the backend is unreachable or its reply is
// unusable: one placeholder entry per calendar month.
func fallbackPlan() []PlanEntry {
	entries := make([]PlanEntry, 0, 12)
	for month := 1; month <= 12; month++ {
		entries = append(entries, PlanEntry{
			Month:       month,
			Description: fmt.Sprintf("Month %d milestone", month),
		})
	}
	return entries
}

// GenerateMonthlyBreakdowns asks the backend for a 12-entry monthly plan.
// Accepted reply shapes, in order: an object carrying a "months" array, or a
// bare array. Anything else, and any transport or parse error, yields the
// placeholder plan. Entries are passed through as-is; persistence discards
// out-of-range months and empty descriptions.
func (s *AIService) GenerateMonthlyBreakdowns(ctx context.Context, title, description string, year int) []PlanEntry {
	prompt := fmt.Sprintf(`I'm planning to achieve the following goal in %d:

Goal: %s
Description: %s

Please create a monthly breakdown for this goal with specific milestones or actions for each month (January through December).
Each month should have a clear, actionable description of what I should achieve.

Format the response as JSON like this:
{
    "months": [
        {"month": 1, "description": "January milestone"},
        {"month": 2, "description": "February milestone"},
        ...and so on for all 12 months
    ]
}

Only respond with the JSON object as specified above, no additional text.`, year, title, description)

	content, err := s.complete(ctx,
		"You are a helpful assistant that creates monthly breakdowns for yearly goals.",
		prompt,
	)
	if err != nil {
		slog.Warn("monthly breakdown generation failed, using placeholder plan",
			"error", err, "title", title, "year", year)
		return fallbackPlan()
	}

	var object struct {
		Months []PlanEntry `json:"months"`
	}
	if err := json.Unmarshal([]byte(content), &object); err == nil && object.Months != nil {
		return object.Months
	}

	var entries []PlanEntry
	if err := json.Unmarshal([]byte(content), &entries); err == nil {
		return entries
	}

	slog.Warn("monthly breakdown reply had unexpected shape, using placeholder plan",
		"title", title, "year", year)
	return fallbackPlan()
}

// GenerateGoalFeedback asks the backend for one verdict on the goal's
// trajectory so far. The reply is returned verbatim; on any failure the fixed
// affirm fallback is returned instead.
func (s *AIService) GenerateGoalFeedback(ctx context.Context, title, description string, breakdowns []*model.MonthlyBreakdown, currentMonth int) FeedbackResult {
	var summary strings.Builder
	for _, breakdown := range breakdowns {
		if breakdown.Month > currentMonth {
			continue
		}
		status := breakdown.Status
		if status == "" {
			status = "unknown"
		}
		fmt.Fprintf(&summary, "Month %d: %s - Status: %s\n", breakdown.Month, breakdown.Description, status)
	}

	prompt := fmt.Sprintf(`I'm tracking progress on this goal:

Goal: %s
Description: %s

Here's my progress so far (we're currently in month %d):

%s
Based on this progress, provide an analysis of my goal achievement and a recommendation.
Choose exactly ONE of these recommendation types:
1. "double_down" - if I need to focus more effort on this goal
2. "reconsider" - if I should rethink my approach or adjust the goal
3. "raise_the_bar" - if I'm doing so well I should set more ambitious targets
4. "affirm" - if I'm on track and should continue as planned

Format your response as a JSON object with these fields:
- feedback_text: [your detailed analysis and advice]
- feedback_type: [one of: "double_down", "reconsider", "raise_the_bar", "affirm"]

Only respond with the JSON object, no additional text.`, title, description, currentMonth, summary.String())

	content, err := s.complete(ctx,
		"You are a goal achievement analyst who provides constructive feedback.",
		prompt,
	)
	if err != nil {
		slog.Warn("goal feedback generation failed, using fallback",
			"error", err, "title", title)
		return fallbackFeedback()
	}

	var result FeedbackResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		slog.Warn("goal feedback reply was not valid JSON, using fallback", "title", title)
		return fallbackFeedback()
	}

	return result
}

func fallbackFeedback() FeedbackResult {
	return FeedbackResult{
		FeedbackText: "Unable to generate personalized feedback at this time.",
		FeedbackType: model.FeedbackTypeAffirm,
	}
}

// complete issues one chat completion request. No randomness-control parameter
// is set; the backend decides.
func (s *AIService) complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("backend returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
