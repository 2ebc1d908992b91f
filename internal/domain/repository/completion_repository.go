package repository

import (
	"context"

	"multiAISummarizer/internal/domain/entity"
)

// CompletionRepository はLLMバックエンドにプロンプトを1件送るインターフェース
type CompletionRepository interface {
	// Complete returns the model's text answer to prompt.
	Complete(ctx context.Context, prompt string) (string, error)
}

// BackendSelector builds a CompletionRepository for the chosen model.
// The credential lives only for the returned client and must never be logged.
type BackendSelector interface {
	Select(ctx context.Context, model entity.Model, credential string) (CompletionRepository, error)
}
