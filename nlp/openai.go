package nlp

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"go-textlens/config"
)

// NewOpenAIBackend analyzes text with an OpenAI chat model in json mode.
func NewOpenAIBackend(cfg config.OpenAI) Backend {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	return &llmBackend{
		name:     config.ProviderOpenAI,
		complete: openAIComplete(client, cfg.Model),
	}
}

func openAIComplete(client *openai.Client, model string) completeFunc {
	return func(ctx context.Context, system, prompt string) (string, error) {
		resp, err := client.CreateChatCompletion(
			ctx,
			openai.ChatCompletionRequest{
				Model: model,
				Messages: []openai.ChatCompletionMessage{
					{
						Role:    openai.ChatMessageRoleSystem,
						Content: system,
					},
					{
						Role:    openai.ChatMessageRoleUser,
						Content: prompt,
					},
				},
				ResponseFormat: &openai.ChatCompletionResponseFormat{
					Type: openai.ChatCompletionResponseFormatTypeJSONObject,
				},
				N: 1,
			},
		)
		if err != nil {
			return "", fmt.Errorf("openai chat completion error: %w", err)
		}

		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			return "", fmt.Errorf("openai returned empty response or choices")
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	}
}
