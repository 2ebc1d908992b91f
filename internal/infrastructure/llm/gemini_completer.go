package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"multiAISummarizer/internal/domain/entity"
)

// geminiCompleter uses the Google Gen AI SDK against the Gemini API.
type geminiCompleter struct {
	client    *genai.Client
	model     string
	maxTokens int32
	timeout   time.Duration
}

func newGeminiCompleter(ctx context.Context, cfg Config, apiKey string) (*geminiCompleter, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.GeminiBaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.GeminiBaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, &entity.ConfigurationError{
			Model:  entity.ModelGemini,
			Reason: fmt.Sprintf("failed to create client: %v", err),
		}
	}

	return &geminiCompleter{
		client:    client,
		model:     cfg.GeminiModel,
		maxTokens: int32(cfg.MaxTokens),
		timeout:   cfg.Timeout,
	}, nil
}

func (c *geminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.generateConfig())
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini: no text in response")
	}
	return text, nil
}

func (c *geminiCompleter) generateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0),
		MaxOutputTokens: c.maxTokens,
	}
}
