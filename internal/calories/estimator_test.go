package calories

import (
	"context"
	"errors"
	"testing"

	"fitcoach/coaching-app/internal/domain"

	openai "github.com/sashabaranov/go-openai"
)

type fakeCompleter struct {
	reply string
	err   error
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.reply}},
		},
	}, nil
}

func request() domain.CalorieRequest {
	return domain.CalorieRequest{
		Age:           30,
		WeightKg:      80,
		HeightCm:      180,
		Gender:        domain.GenderMale,
		ActivityLevel: domain.ActivityModerate,
		Goal:          domain.GoalMaintainWeight,
	}
}

func TestEstimatePlainInteger(t *testing.T) {
	e := NewEstimatorWithClient(&fakeCompleter{reply: "2500"}, openai.GPT4)

	got, err := e.EstimateDailyCalories(context.Background(), request())
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}
	if got != 2500 {
		t.Errorf("estimate = %d, want 2500", got)
	}
}

func TestEstimateExtractsDigitRun(t *testing.T) {
	cases := []struct {
		reply string
		want  int
	}{
		{"Your estimated daily need is 2750 kcal.", 2750},
		{"  2300\n", 2300},
		{"Approximately 1900 calories per day", 1900},
	}
	for _, tc := range cases {
		e := NewEstimatorWithClient(&fakeCompleter{reply: tc.reply}, openai.GPT4)
		got, err := e.EstimateDailyCalories(context.Background(), request())
		if err != nil {
			t.Errorf("reply %q: estimate failed: %v", tc.reply, err)
			continue
		}
		if got != tc.want {
			t.Errorf("reply %q: estimate = %d, want %d", tc.reply, got, tc.want)
		}
	}
}

func TestEstimateRejectsNonNumericReply(t *testing.T) {
	e := NewEstimatorWithClient(&fakeCompleter{reply: "I cannot answer that."}, openai.GPT4)

	_, err := e.EstimateDailyCalories(context.Background(), request())
	if !errors.Is(err, ErrUnparsableEstimate) {
		t.Fatalf("err = %v, want ErrUnparsableEstimate", err)
	}
}

func TestEstimateWrapsTransportFailure(t *testing.T) {
	e := NewEstimatorWithClient(&fakeCompleter{err: errors.New("boom")}, openai.GPT4)

	_, err := e.EstimateDailyCalories(context.Background(), request())
	if !errors.Is(err, ErrEstimateFailed) {
		t.Fatalf("err = %v, want ErrEstimateFailed", err)
	}
}
