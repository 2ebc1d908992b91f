package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"multiAISummarizer/internal/application"
	"multiAISummarizer/internal/infrastructure/html"
	"multiAISummarizer/internal/infrastructure/llm"
	"multiAISummarizer/internal/interfaces/config"
	"multiAISummarizer/internal/interfaces/web"
)

func main() {
	log.Println("Starting Multi-AI Text Summarizer...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	selector := llm.NewSelector(llm.Config{
		DeepSeekBaseURL: cfg.DeepSeekBaseURL,
		DeepSeekModel:   cfg.DeepSeekModel,
		ClaudeBaseURL:   cfg.ClaudeBaseURL,
		ClaudeModel:     cfg.ClaudeModel,
		GeminiBaseURL:   cfg.GeminiBaseURL,
		GeminiModel:     cfg.GeminiModel,
		BedrockRegion:   cfg.BedrockRegion,
		BedrockModel:    cfg.BedrockModel,
		OllamaURL:       cfg.OllamaURL,
		OllamaModel:     cfg.OllamaModel,
		MaxTokens:       cfg.MaxTokens,
		Timeout:         cfg.GetLLMTimeout(),
	})
	if cfg.BedrockRegion == "" {
		log.Println("BEDROCK_REGION is not set; the Bedrock model will report a configuration error")
	}

	pipeline := application.NewPipeline(application.PipelineConfig{
		ChunkSize:      cfg.ChunkSize,
		ReduceMaxChars: cfg.ReduceMaxChars,
		Concurrency:    cfg.MapConcurrency,
		MapPrompt:      cfg.MapPrompt,
		CombinePrompt:  cfg.CombinePrompt,
	})
	service := application.NewSummarizeService(selector, pipeline)

	handler := web.NewHandler(service, html.NewArticleFetcher(cfg.GetFetchTimeout()), web.Config{
		MaxInputChars:  cfg.MaxInputChars,
		MaxPermits:     cfg.MaxPermits,
		RefillInterval: cfg.GetRefillInterval(),
		MaxWait:        cfg.GetMaxThrottleWait(),
	})

	srv := &http.Server{
		Addr:              cfg.GetListenAddr(),
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Listening on %s (chunk size %d, map concurrency %d)", srv.Addr, cfg.ChunkSize, cfg.MapConcurrency)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-sigCh
	log.Println("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
