package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGeminiCompleterComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "gemini-key" {
			t.Errorf("x-goog-api-key: got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":" gemini summary "}]}}]}`))
	}))
	defer srv.Close()

	c, err := newGeminiCompleter(context.Background(), Config{
		GeminiBaseURL: srv.URL,
		GeminiModel:   "gemini-test",
		MaxTokens:     1000,
		Timeout:       5 * time.Second,
	}, "gemini-key")
	if err != nil {
		t.Fatalf("failed to create completer: %v", err)
	}

	got, err := c.Complete(context.Background(), "summarize")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "gemini summary" {
		t.Errorf("got %q, want %q", got, "gemini summary")
	}
}

func TestGeminiCompleterNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c, err := newGeminiCompleter(context.Background(), Config{
		GeminiBaseURL: srv.URL,
		GeminiModel:   "gemini-test",
		Timeout:       5 * time.Second,
	}, "gemini-key")
	if err != nil {
		t.Fatalf("failed to create completer: %v", err)
	}

	if _, err := c.Complete(context.Background(), "summarize"); err == nil {
		t.Fatal("expected error for empty candidates, got nil")
	}
}

func TestGeminiCompleterGenerateConfig(t *testing.T) {
	c := &geminiCompleter{maxTokens: 1000}

	cfg := c.generateConfig()
	if cfg.MaxOutputTokens != 1000 {
		t.Errorf("expected max output tokens 1000, got %d", cfg.MaxOutputTokens)
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0 {
		t.Errorf("expected temperature 0, got %v", cfg.Temperature)
	}
}
