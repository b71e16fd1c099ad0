// Package calories estimates daily calorie needs through an AI model.
// The model is asked for a bare integer; anything else is salvaged by
// extracting the first digit run, and failing that the estimate is a
// recoverable error, never a crash.
package calories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"fitcoach/coaching-app/internal/domain"

	openai "github.com/sashabaranov/go-openai"
)

var (
	ErrNotConfigured      = errors.New("calorie estimator is not configured")
	ErrUnparsableEstimate = errors.New("the AI service did not return a calorie number")
	ErrEstimateFailed     = errors.New("failed to reach the AI estimation service")
)

var digitRun = regexp.MustCompile(`\d+`)

// Completer is the slice of the OpenAI client the estimator needs.
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Estimator asks a chat model for a daily calorie estimate.
type Estimator struct {
	client Completer
	model  string
}

// NewEstimator creates an estimator backed by the OpenAI API.
func NewEstimator(apiKey string) *Estimator {
	return &Estimator{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4,
	}
}

// NewEstimatorWithClient creates an estimator with a custom completion
// backend; used by tests.
func NewEstimatorWithClient(client Completer, model string) *Estimator {
	return &Estimator{client: client, model: model}
}

// WithModel overrides the chat model.
func (e *Estimator) WithModel(model string) *Estimator {
	e.model = model
	return e
}

// EstimateDailyCalories returns the estimated daily calorie need for the
// given demographic and goal inputs.
func (e *Estimator) EstimateDailyCalories(ctx context.Context, req domain.CalorieRequest) (int, error) {
	if e.client == nil {
		return 0, ErrNotConfigured
	}

	prompt := fmt.Sprintf(
		"Calculate the required daily calories for a person with the following data:\n"+
			"- Age: %d years\n"+
			"- Weight: %d kg\n"+
			"- Height: %d cm\n"+
			"- Gender: %s\n"+
			"- Activity level: %s\n"+
			"- Goal: %s\n\n"+
			"Reply with a single integer number of calories and nothing else. For example: 2500",
		req.Age, req.WeightKg, req.HeightCm, req.Gender, req.ActivityLevel, req.Goal,
	)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert nutritionist. Answer with a single integer only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   20,
		Temperature: 0.2,
	})
	if err != nil {
		return 0, ErrEstimateFailed
	}
	if len(resp.Choices) == 0 {
		return 0, ErrUnparsableEstimate
	}

	return parseCalorieReply(resp.Choices[0].Message.Content)
}

// parseCalorieReply accepts a bare integer, or falls back to the first digit
// run when the model wraps the number in text.
func parseCalorieReply(reply string) (int, error) {
	text := strings.TrimSpace(reply)
	if n, err := strconv.Atoi(text); err == nil && n > 0 {
		return n, nil
	}

	if match := digitRun.FindString(text); match != "" {
		if n, err := strconv.Atoi(match); err == nil && n > 0 {
			return n, nil
		}
	}
	return 0, ErrUnparsableEstimate
}
