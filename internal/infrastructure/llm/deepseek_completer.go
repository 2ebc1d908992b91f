package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// deepSeekCompleter talks to DeepSeek through its OpenAI compatible Chat Completions API.
type deepSeekCompleter struct {
	client    openai.Client
	model     string
	maxTokens int64
	timeout   time.Duration
}

func newDeepSeekCompleter(cfg Config, apiKey string) *deepSeekCompleter {
	return &deepSeekCompleter{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(cfg.DeepSeekBaseURL),
		),
		model:     cfg.DeepSeekModel,
		maxTokens: int64(cfg.MaxTokens),
		timeout:   cfg.Timeout,
	}
}

func (c *deepSeekCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0),
		MaxTokens:   openai.Int(c.maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("deepseek: do request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("deepseek: no choices in response")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("deepseek: empty completion (finish reason = %s)", resp.Choices[0].FinishReason)
	}
	return text, nil
}
