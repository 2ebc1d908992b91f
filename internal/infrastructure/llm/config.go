package llm

import (
	"context"
	"strings"
	"time"

	"multiAISummarizer/internal/domain/entity"
	"multiAISummarizer/internal/domain/repository"
)

// Config holds the per-backend settings. Credentials are not part of it; they
// arrive with each request.
type Config struct {
	DeepSeekBaseURL string
	DeepSeekModel   string
	ClaudeBaseURL   string
	ClaudeModel     string
	GeminiBaseURL   string
	GeminiModel     string
	BedrockRegion   string
	BedrockModel    string
	OllamaURL       string
	OllamaModel     string
	MaxTokens       int
	Timeout         time.Duration
}

const (
	defaultDeepSeekBaseURL = "https://api.deepseek.com"
	defaultDeepSeekModel   = "deepseek-chat"
	defaultClaudeBaseURL   = "https://api.anthropic.com"
	defaultClaudeModel     = "claude-3-haiku-20240307"
	defaultGeminiModel     = "gemini-2.0-flash"
	defaultBedrockModel    = "anthropic.claude-3-haiku-20240307-v1:0"
	defaultOllamaURL       = "http://localhost:11434"
	defaultOllamaModel     = "mistral"
	defaultMaxTokens       = 512
	defaultTimeout         = 120 * time.Second
)

func (c Config) withDefaults() Config {
	if c.DeepSeekBaseURL == "" {
		c.DeepSeekBaseURL = defaultDeepSeekBaseURL
	}
	if c.DeepSeekModel == "" {
		c.DeepSeekModel = defaultDeepSeekModel
	}
	if c.ClaudeBaseURL == "" {
		c.ClaudeBaseURL = defaultClaudeBaseURL
	}
	if c.ClaudeModel == "" {
		c.ClaudeModel = defaultClaudeModel
	}
	if c.GeminiModel == "" {
		c.GeminiModel = defaultGeminiModel
	}
	if c.BedrockModel == "" {
		c.BedrockModel = defaultBedrockModel
	}
	if c.OllamaURL == "" {
		c.OllamaURL = defaultOllamaURL
	}
	if c.OllamaModel == "" {
		c.OllamaModel = defaultOllamaModel
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// Selector turns a model choice and a credential into a backend client.
// Selecting never talks to the network.
type Selector struct {
	cfg Config
}

// NewSelector はConfigに基づいてモデル選択用のSelectorを生成します
func NewSelector(cfg Config) *Selector {
	return &Selector{cfg: cfg.withDefaults()}
}

// Select はモデルと認証情報に対応するCompletionRepositoryを返します。
// リモートモデルで認証情報が空の場合はConfigurationErrorを返します
func (s *Selector) Select(ctx context.Context, model entity.Model, credential string) (repository.CompletionRepository, error) {
	if !model.IsKnown() {
		return nil, &entity.UnsupportedModelError{Model: string(model)}
	}

	credential = strings.TrimSpace(credential)
	if model.RequiresCredential() && credential == "" {
		return nil, &entity.ConfigurationError{Model: model, Reason: "API key is required"}
	}

	switch model {
	case entity.ModelDeepSeek:
		return newDeepSeekCompleter(s.cfg, credential), nil
	case entity.ModelClaude:
		return newClaudeCompleter(s.cfg, credential), nil
	case entity.ModelGemini:
		c, err := newGeminiCompleter(ctx, s.cfg, credential)
		if err != nil {
			return nil, err
		}
		return c, nil
	case entity.ModelBedrock:
		c, err := newBedrockCompleter(ctx, s.cfg, credential)
		if err != nil {
			return nil, err
		}
		return c, nil
	case entity.ModelOllama:
		return newOllamaCompleter(s.cfg), nil
	default:
		return nil, &entity.UnsupportedModelError{Model: string(model)}
	}
}
