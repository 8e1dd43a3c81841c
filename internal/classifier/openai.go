package classifier

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIClassifier asks an OpenAI chat model with vision input.
type OpenAIClassifier struct {
	llm *openai.LLM
}

func NewOpenAIClassifier(apiKey, model string) (*OpenAIClassifier, error) {
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return &OpenAIClassifier{llm: llm}, nil
}

func (c *OpenAIClassifier) Classify(ctx context.Context, base64Image string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, SystemPrompt),
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.ImageURLPart("data:image/jpeg;base64," + base64Image),
				llms.TextPart(UserPrompt),
			},
		},
	}

	response, err := c.llm.GenerateContent(ctx, messages, llms.WithMaxTokens(MaxTokens))
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}

	if response == nil || len(response.Choices) == 0 {
		return "", nil
	}

	return response.Choices[0].Content, nil
}
