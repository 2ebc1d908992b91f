package application

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"multiAISummarizer/internal/domain/entity"
	"multiAISummarizer/internal/domain/repository"
)

// SummarizeService はモデル選択と要約パイプラインを組み合わせるサービス
type SummarizeService struct {
	selector repository.BackendSelector
	pipeline *Pipeline
}

// NewSummarizeService は新しいSummarizeServiceを生成します
func NewSummarizeService(selector repository.BackendSelector, pipeline *Pipeline) *SummarizeService {
	return &SummarizeService{
		selector: selector,
		pipeline: pipeline,
	}
}

// Summarize selects the backend for model and returns the map-reduce summary of text.
// The credential is handed to the backend only and is never logged.
func (s *SummarizeService) Summarize(ctx context.Context, text string, model entity.Model, credential string) (*entity.Summary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, entity.ErrEmptyInput
	}

	client, err := s.selector.Select(ctx, model, credential)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	docs := s.pipeline.Split(text)
	log.Printf("Summarizing %d chunks with %s", len(docs), model)

	summary, err := s.pipeline.Run(ctx, client, docs)
	if err != nil {
		var backendErr *entity.BackendError
		if errors.As(err, &backendErr) && backendErr.Model == "" {
			backendErr.Model = model
		}
		log.Printf("Summarization with %s failed: %v", model, err)
		return nil, err
	}

	elapsed := time.Since(start)
	log.Printf("Summarized %d chunks with %s in %v", len(docs), model, elapsed)

	return &entity.Summary{
		Text:    summary,
		Model:   model,
		Chunks:  len(docs),
		Elapsed: elapsed,
	}, nil
}
