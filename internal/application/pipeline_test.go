package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"multiAISummarizer/internal/domain/entity"
)

func newEchoPipeline(chunkSize, reduceMaxChars int) *Pipeline {
	return NewPipeline(PipelineConfig{
		ChunkSize:      chunkSize,
		ReduceMaxChars: reduceMaxChars,
		Concurrency:    2,
		MapPrompt:      PromptPlaceholder,
		CombinePrompt:  PromptPlaceholder,
	})
}

func TestPipeline_Split(t *testing.T) {
	p := newEchoPipeline(4, 100)

	docs := p.Split("aaaabbbbcc")
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	for i, want := range []string{"aaaa", "bbbb", "cc"} {
		if docs[i].PageContent != want || docs[i].Index != i {
			t.Errorf("docs[%d]: expected %q at index %d, got %q at %d", i, want, i, docs[i].PageContent, docs[i].Index)
		}
	}
}

func TestPipeline_Run_EchoPreservesChunkOrder(t *testing.T) {
	ctx := context.Background()
	p := newEchoPipeline(4, 100)
	client := &echoCompleter{}

	got, err := p.Run(ctx, client, p.Split("aaaabbbbcc"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := "aaaa\n\nbbbb\n\ncc"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	// 3 map calls and 1 combine call
	if client.calls() != 4 {
		t.Errorf("expected 4 completion calls, got %d", client.calls())
	}
}

func TestPipeline_Run_SwappingChunksChangesOutput(t *testing.T) {
	ctx := context.Background()
	p := newEchoPipeline(4, 100)

	first, err := p.Run(ctx, &echoCompleter{}, p.Split("aaaabbbb"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.Run(ctx, &echoCompleter{}, p.Split("bbbbaaaa"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == second {
		t.Fatalf("expected different output for swapped chunks, got %q for both", first)
	}
	if first != "aaaa\n\nbbbb" || second != "bbbb\n\naaaa" {
		t.Errorf("unexpected outputs %q and %q", first, second)
	}

	again, _ := p.Run(ctx, &echoCompleter{}, p.Split("aaaabbbb"))
	if again != first {
		t.Errorf("expected deterministic output, got %q then %q", first, again)
	}
}

func TestPipeline_Run_DefaultPromptWrapsText(t *testing.T) {
	p := NewPipeline(PipelineConfig{})
	client := &echoCompleter{}

	if _, err := p.Run(context.Background(), client, p.Split("hello world")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(client.prompts[0], "\"hello world\"") || !strings.HasSuffix(client.prompts[0], "CONCISE SUMMARY:") {
		t.Errorf("unexpected map prompt: %q", client.prompts[0])
	}
}

func TestPipeline_Run_SingleChunkStillCombines(t *testing.T) {
	p := newEchoPipeline(100, 100)
	client := &shortCompleter{answer: "summary"}

	got, err := p.Run(context.Background(), client, p.Split("short text"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "summary" {
		t.Errorf("expected %q, got %q", "summary", got)
	}
	if n := client.count.Load(); n != 2 {
		t.Errorf("expected 1 map call and 1 combine call, got %d", n)
	}
}

func TestPipeline_Run_CollapsesUntilWithinBudget(t *testing.T) {
	ctx := context.Background()
	// 10 chunks of 5 characters; echoed partials join to 68 characters, above the budget of 20.
	p := newEchoPipeline(5, 20)
	client := &echoCompleter{}

	text := "aaaaabbbbbcccccdddddeeeeefffffggggghhhhhiiiiijjjjj"
	got, err := p.Run(ctx, client, p.Split(text))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Echo keeps every chunk, so the result must still list them in source order.
	if flat := strings.ReplaceAll(got, "\n", ""); flat != text {
		t.Errorf("expected chunk order to survive collapsing, got %q", got)
	}
	if client.calls() <= 11 {
		t.Errorf("expected collapse rounds beyond map and final combine, got %d calls", client.calls())
	}
}

func TestPipeline_CollapseGroups(t *testing.T) {
	p := newEchoPipeline(5, 12)

	testCases := []struct {
		name     string
		partials []string
		want     [][]string
	}{
		{
			name:     "pairs within budget",
			partials: []string{"aaaa", "bbbb", "cccc", "dddd"},
			want:     [][]string{{"aaaa", "bbbb"}, {"cccc", "dddd"}},
		},
		{
			name:     "oversized partials still pair up",
			partials: []string{"aaaaaaaaaaaaaaa", "bbbbbbbbbbbbbbb", "ccccccccccccccc"},
			want:     [][]string{{"aaaaaaaaaaaaaaa", "bbbbbbbbbbbbbbb", "ccccccccccccccc"}},
		},
		{
			name:     "trailing single joins previous group",
			partials: []string{"aaaa", "bbbb", "cccc"},
			want:     [][]string{{"aaaa", "bbbb", "cccc"}},
		},
		{
			name:     "small partials fill a group",
			partials: []string{"a", "b", "c", "d", "e", "f"},
			want:     [][]string{{"a", "b", "c", "d"}, {"e", "f"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.collapseGroups(tc.partials)
			if len(got) >= len(tc.partials) {
				t.Fatalf("expected fewer groups than partials, got %d groups for %d partials", len(got), len(tc.partials))
			}
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d groups, got %d: %v", len(tc.want), len(got), got)
			}
			for i := range got {
				if strings.Join(got[i], "|") != strings.Join(tc.want[i], "|") {
					t.Errorf("group[%d]: expected %v, got %v", i, tc.want[i], got[i])
				}
			}
		})
	}
}

func TestPipeline_Run_FailureOnSecondCall(t *testing.T) {
	cause := errors.New("429 rate limited")
	p := newEchoPipeline(4, 100)
	client := &failingCompleter{failOn: 2, err: cause}

	got, err := p.Run(context.Background(), client, p.Split("aaaabbbbccccdddd"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got != "" {
		t.Errorf("expected no partial summary, got %q", got)
	}

	var backendErr *entity.BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("expected BackendError, got %T: %v", err, err)
	}
	if backendErr.Phase != "map" {
		t.Errorf("expected failure in map phase, got %q", backendErr.Phase)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected error to wrap the backend cause, got %v", err)
	}
}

func TestPipeline_Run_FailureInCombine(t *testing.T) {
	p := newEchoPipeline(100, 100)
	client := &failingCompleter{failOn: 2, err: errors.New("connection reset")}

	_, err := p.Run(context.Background(), client, p.Split("one chunk"))

	var backendErr *entity.BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if backendErr.Phase != "combine" {
		t.Errorf("expected failure in combine phase, got %q", backendErr.Phase)
	}
}

func TestPipeline_Run_NoDocuments(t *testing.T) {
	p := newEchoPipeline(4, 100)

	_, err := p.Run(context.Background(), &echoCompleter{}, nil)
	if !errors.Is(err, entity.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}
