package extraction

import (
	"context"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI implements FieldProvider using the OpenAI chat completions API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates a new OpenAI field provider.
func NewOpenAI(apiKey string, modelName string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if modelName == "" {
		modelName = openai.GPT3Dot5Turbo
	}

	return &OpenAI{
		client: openai.NewClient(apiKey),
		model:  modelName,
	}, nil
}

// ExtractFields makes a single structured-extraction attempt over the OCR
// text. Temperature 0: this is extraction, not generation, and randomness
// here means two scans of the same receipt disagree.
func (o *OpenAI) ExtractFields(ctx context.Context, rawText string) (Candidate, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildFieldPrompt(rawText),
			},
		},
		// A literal 0 is dropped from the request body (omitempty) and the
		// API would fall back to its default temperature. The smallest
		// positive float stays on the wire and rounds to zero.
		Temperature: math.SmallestNonzeroFloat32,
	})
	if err != nil {
		return Candidate{}, fmt.Errorf("calling chat completion: %w", err)
	}

	// An empty choice list degrades to an empty candidate, same as any other
	// malformed model output.
	var content string
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}
	return parseCandidate(content), nil
}

// Close closes the provider (no-op for the HTTP-backed client).
func (o *OpenAI) Close() error {
	return nil
}
