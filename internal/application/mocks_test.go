package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"multiAISummarizer/internal/domain/entity"
	"multiAISummarizer/internal/domain/repository"
)

// echoCompleter returns the prompt unchanged.
type echoCompleter struct {
	mu      sync.Mutex
	prompts []string
}

func (m *echoCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	return prompt, nil
}

func (m *echoCompleter) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// failingCompleter fails on call number failOn and echoes otherwise.
type failingCompleter struct {
	failOn int32
	count  atomic.Int32
	err    error
}

func (m *failingCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if m.count.Add(1) == m.failOn {
		return "", m.err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return prompt, nil
}

// shortCompleter answers every prompt with a fixed summary.
type shortCompleter struct {
	answer string
	count  atomic.Int32
}

func (m *shortCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.count.Add(1)
	return m.answer, nil
}

type mockSelector struct {
	client     repository.CompletionRepository
	selected   []entity.Model
	credential string
}

func (m *mockSelector) Select(ctx context.Context, model entity.Model, credential string) (repository.CompletionRepository, error) {
	if !model.IsKnown() {
		return nil, &entity.UnsupportedModelError{Model: string(model)}
	}
	if model.RequiresCredential() && strings.TrimSpace(credential) == "" {
		return nil, &entity.ConfigurationError{Model: model, Reason: "API key is required"}
	}
	m.selected = append(m.selected, model)
	m.credential = credential
	if m.client == nil {
		return nil, errors.New("no client configured")
	}
	return m.client, nil
}
