package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const promptPlaceholder = "{text}"

// Config はアプリケーション全体の設定
type Config struct {
	Port int `envconfig:"PORT" default:"8501"`

	ChunkSize      int    `envconfig:"CHUNK_SIZE" default:"4000"`
	ReduceMaxChars int    `envconfig:"REDUCE_MAX_CHARS" default:"12000"`
	MapConcurrency int    `envconfig:"MAP_CONCURRENCY" default:"4"`
	MapPrompt      string `envconfig:"MAP_PROMPT"`
	CombinePrompt  string `envconfig:"COMBINE_PROMPT"`
	MaxInputChars  int    `envconfig:"MAX_INPUT_CHARS" default:"200000"`

	LLMTimeout   int `envconfig:"LLM_TIMEOUT" default:"120"`
	FetchTimeout int `envconfig:"FETCH_TIMEOUT" default:"15"`
	MaxTokens    int `envconfig:"MAX_TOKENS" default:"512"`

	MaxPermits      int `envconfig:"MAX_PERMITS" default:"5"`
	RefillInterval  int `envconfig:"REFILL_INTERVAL" default:"10"`
	MaxThrottleWait int `envconfig:"MAX_THROTTLE_WAIT" default:"30"`

	DeepSeekBaseURL string `envconfig:"DEEPSEEK_BASE_URL" default:"https://api.deepseek.com"`
	DeepSeekModel   string `envconfig:"DEEPSEEK_MODEL" default:"deepseek-chat"`
	ClaudeBaseURL   string `envconfig:"CLAUDE_BASE_URL" default:"https://api.anthropic.com"`
	ClaudeModel     string `envconfig:"CLAUDE_MODEL" default:"claude-3-haiku-20240307"`
	GeminiBaseURL   string `envconfig:"GEMINI_BASE_URL"`
	GeminiModel     string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	BedrockRegion   string `envconfig:"BEDROCK_REGION"`
	BedrockModel    string `envconfig:"BEDROCK_MODEL" default:"anthropic.claude-3-haiku-20240307-v1:0"`
	OllamaURL       string `envconfig:"OLLAMA_URL" default:"http://localhost:11434"`
	OllamaModel     string `envconfig:"OLLAMA_MODEL" default:"mistral"`
}

// LoadConfig は.envと環境変数から設定を読み込み、検証します
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.Port)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ReduceMaxChars <= 0 {
		return fmt.Errorf("REDUCE_MAX_CHARS must be positive, got %d", c.ReduceMaxChars)
	}
	if c.MapConcurrency <= 0 {
		return fmt.Errorf("MAP_CONCURRENCY must be positive, got %d", c.MapConcurrency)
	}
	if c.MaxPermits <= 0 {
		return fmt.Errorf("MAX_PERMITS must be positive, got %d", c.MaxPermits)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("REFILL_INTERVAL must be positive, got %d", c.RefillInterval)
	}
	if c.MaxThrottleWait <= 0 {
		return fmt.Errorf("MAX_THROTTLE_WAIT must be positive, got %d", c.MaxThrottleWait)
	}
	if c.MapPrompt != "" && !strings.Contains(c.MapPrompt, promptPlaceholder) {
		return fmt.Errorf("MAP_PROMPT must contain %s", promptPlaceholder)
	}
	if c.CombinePrompt != "" && !strings.Contains(c.CombinePrompt, promptPlaceholder) {
		return fmt.Errorf("COMBINE_PROMPT must contain %s", promptPlaceholder)
	}
	return nil
}

func (c *Config) GetLLMTimeout() time.Duration {
	return time.Duration(c.LLMTimeout) * time.Second
}

func (c *Config) GetFetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeout) * time.Second
}

func (c *Config) GetRefillInterval() time.Duration {
	return time.Duration(c.RefillInterval) * time.Second
}

func (c *Config) GetMaxThrottleWait() time.Duration {
	return time.Duration(c.MaxThrottleWait) * time.Second
}

func (c *Config) GetListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
