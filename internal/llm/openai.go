package llm

import (
	"context"
	"fmt"

	"deep-travel-collections/internal/config"
	"deep-travel-collections/internal/shared"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const openAIModel = "gpt-4o-mini"

// openAIClient is a client for the OpenAI chat completions API.
type openAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI API client using the official SDK.
func NewOpenAIClient(cfg *config.Config) (TextGenerator, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	return &openAIClient{
		client: openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey)),
		model:  openAIModel,
	}, nil
}

// GenerateContent sends a prompt to the OpenAI model and returns the generated text.
func (c *openAIClient) GenerateContent(ctx context.Context, prompt string) (ContentResponse, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Choices) == 0 {
		return ContentResponse{}, fmt.Errorf("no content generated")
	}

	return ContentResponse{
		Content: resp.Choices[0].Message.Content,
		Usage: shared.TokenUsage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
			Model:            c.model,
		},
	}, nil
}
