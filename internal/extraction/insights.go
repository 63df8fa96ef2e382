package extraction

import (
	"context"
	"fmt"
	"sort"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Insights implements InsightsProvider using the OpenAI chat completions API.
// Unlike field extraction this stage is generative, so it runs at a non-zero
// temperature.
type Insights struct {
	client *openai.Client
	model  string
}

// NewInsights creates a new Insights provider.
func NewInsights(apiKey string, modelName string) (*Insights, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if modelName == "" {
		modelName = openai.GPT3Dot5Turbo
	}

	return &Insights{
		client: openai.NewClient(apiKey),
		model:  modelName,
	}, nil
}

// Summarize turns one month's per-category totals into a short narrative.
func (i *Insights) Summarize(ctx context.Context, month string, year int, totals map[string]float64) (string, error) {
	// Sorted so the same totals always produce the same prompt
	categories := make([]string, 0, len(totals))
	for category := range totals {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var summary strings.Builder
	for _, category := range categories {
		fmt.Fprintf(&summary, "%s: $%.2f\n", category, totals[category])
	}

	resp, err := i.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: i.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(insightsPromptFormat, month, year, summary.String()),
			},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("calling chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no content in chat completion response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
