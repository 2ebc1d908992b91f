package application

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"multiAISummarizer/internal/domain/entity"
	"multiAISummarizer/internal/domain/repository"
	"multiAISummarizer/internal/infrastructure/textsplit"
)

// DefaultPrompt is used for both the map and the combine step. {text} is replaced with the input.
const DefaultPrompt = "Write a concise summary of the following:\n\n\n\"{text}\"\n\n\nCONCISE SUMMARY:"

// PromptPlaceholder marks where the text goes inside a prompt template.
const PromptPlaceholder = "{text}"

const (
	defaultReduceMaxChars = 12000
	defaultConcurrency    = 4
	partialSeparator      = "\n\n"
)

// PipelineConfig はmap-reduce要約パイプラインの設定
type PipelineConfig struct {
	ChunkSize      int
	ReduceMaxChars int
	Concurrency    int
	MapPrompt      string
	CombinePrompt  string
}

// Pipeline runs map-reduce summarization over a CompletionRepository.
type Pipeline struct {
	chunkSize      int
	reduceMaxChars int
	concurrency    int
	mapPrompt      string
	combinePrompt  string
}

// NewPipeline は未設定の項目をデフォルト値で補ってPipelineを生成します
func NewPipeline(cfg PipelineConfig) *Pipeline {
	p := &Pipeline{
		chunkSize:      cfg.ChunkSize,
		reduceMaxChars: cfg.ReduceMaxChars,
		concurrency:    cfg.Concurrency,
		mapPrompt:      cfg.MapPrompt,
		combinePrompt:  cfg.CombinePrompt,
	}
	if p.chunkSize <= 0 {
		p.chunkSize = textsplit.DefaultChunkSize
	}
	if p.reduceMaxChars <= 0 {
		p.reduceMaxChars = defaultReduceMaxChars
	}
	if p.concurrency <= 0 {
		p.concurrency = defaultConcurrency
	}
	if p.mapPrompt == "" {
		p.mapPrompt = DefaultPrompt
	}
	if p.combinePrompt == "" {
		p.combinePrompt = DefaultPrompt
	}
	return p
}

// Split returns the documents the map phase will summarize.
func (p *Pipeline) Split(text string) []*entity.Document {
	return entity.NewDocuments(textsplit.Split(text, p.chunkSize))
}

// Run summarizes docs with client. The first failing call aborts the run; its
// siblings are cancelled and no partial result is returned.
func (p *Pipeline) Run(ctx context.Context, client repository.CompletionRepository, docs []*entity.Document) (string, error) {
	if len(docs) == 0 {
		return "", entity.ErrEmptyInput
	}

	partials, err := p.mapDocuments(ctx, client, docs)
	if err != nil {
		return "", err
	}

	for round := 1; len(partials) > 1 && joinedLength(partials) > p.reduceMaxChars; round++ {
		groups := p.collapseGroups(partials)
		log.Printf("Collapsing %d partial summaries into %d (round %d)", len(partials), len(groups), round)

		partials, err = p.combineGroups(ctx, client, groups)
		if err != nil {
			return "", err
		}
	}

	summary, err := client.Complete(ctx, render(p.combinePrompt, strings.Join(partials, partialSeparator)))
	if err != nil {
		return "", phaseError("combine", err)
	}
	return summary, nil
}

func (p *Pipeline) mapDocuments(ctx context.Context, client repository.CompletionRepository, docs []*entity.Document) ([]string, error) {
	partials := make([]string, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, doc := range docs {
		g.Go(func() error {
			partial, err := client.Complete(ctx, render(p.mapPrompt, doc.PageContent))
			if err != nil {
				return fmt.Errorf("chunk %d: %w", doc.Index, err)
			}
			partials[i] = partial
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, phaseError("map", err)
	}

	return partials, nil
}

func (p *Pipeline) combineGroups(ctx context.Context, client repository.CompletionRepository, groups [][]string) ([]string, error) {
	combined := make([]string, len(groups))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, group := range groups {
		g.Go(func() error {
			summary, err := client.Complete(ctx, render(p.combinePrompt, strings.Join(group, partialSeparator)))
			if err != nil {
				return err
			}
			combined[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, phaseError("collapse", err)
	}

	return combined, nil
}

// collapseGroups packs consecutive partials into groups whose joined length
// stays within reduceMaxChars. A group always takes at least two partials so
// every round shrinks the list.
func (p *Pipeline) collapseGroups(partials []string) [][]string {
	var groups [][]string
	var current []string
	size := 0

	for _, partial := range partials {
		n := utf8.RuneCountInString(partial)
		if len(current) >= 2 && size+len(partialSeparator)+n > p.reduceMaxChars {
			groups = append(groups, current)
			current, size = nil, 0
		}
		if len(current) > 0 {
			size += len(partialSeparator)
		}
		current = append(current, partial)
		size += n
	}

	if len(current) == 1 && len(groups) > 0 {
		last := len(groups) - 1
		groups[last] = append(groups[last], current[0])
	} else if len(current) > 0 {
		groups = append(groups, current)
	}

	return groups
}

func joinedLength(partials []string) int {
	n := len(partialSeparator) * (len(partials) - 1)
	for _, partial := range partials {
		n += utf8.RuneCountInString(partial)
	}
	return n
}

func render(template, text string) string {
	return strings.ReplaceAll(template, PromptPlaceholder, text)
}

func phaseError(phase string, err error) error {
	return &entity.BackendError{Phase: phase, Err: err}
}
