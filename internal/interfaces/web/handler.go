package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"multiAISummarizer/internal/domain/entity"
	"multiAISummarizer/internal/domain/repository"
)

const maxBodyBytes = 4 * 1024 * 1024

// Summarizer is the inbound operation the web surface drives.
type Summarizer interface {
	Summarize(ctx context.Context, text string, model entity.Model, credential string) (*entity.Summary, error)
}

// Config はWeb層の入力制限とスロットリングの設定
type Config struct {
	MaxInputChars  int
	MaxPermits     int
	RefillInterval time.Duration
	// MaxWait bounds how long a request queues for a permit before it is rejected.
	MaxWait time.Duration
}

// Handler はHTMLフォームとJSON APIを提供します
type Handler struct {
	summarizer    Summarizer
	articles      repository.ArticleRepository
	limiter       *rateLimiter
	maxInputChars int
}

type summarizeRequest struct {
	Text   string `json:"text"`
	URL    string `json:"url"`
	Model  string `json:"model"`
	APIKey string `json:"api_key"`
}

type summarizeResponse struct {
	Summary   string `json:"summary"`
	Model     string `json:"model"`
	Chunks    int    `json:"chunks"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// fetchError marks a failure to load the text behind a URL.
type fetchError struct {
	err error
}

func (e *fetchError) Error() string {
	return fmt.Sprintf("failed to load url: %v", e.err)
}

func (e *fetchError) Unwrap() error {
	return e.err
}

var errInputTooLong = errors.New("input text is too long")

// NewHandler は要約サービスと記事取得を束ねたHandlerを生成します
func NewHandler(summarizer Summarizer, articles repository.ArticleRepository, cfg Config) *Handler {
	return &Handler{
		summarizer:    summarizer,
		articles:      articles,
		limiter:       newRateLimiter(cfg.MaxPermits, cfg.RefillInterval, cfg.MaxWait),
		maxInputChars: cfg.MaxInputChars,
	}
}

// Routes wires the handlers behind the request ID and logging middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("POST /{$}", h.submitForm)
	mux.HandleFunc("POST /api/summarize", h.apiSummarize)
	mux.HandleFunc("GET /api/models", h.apiModels)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	return withRequestID(withLogging(mux))
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, pageData{Selected: string(entity.ModelDeepSeek)})
}

func (h *Handler) submitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, pageData{Error: "invalid form submission"})
		return
	}

	req := summarizeRequest{
		Text:   r.PostFormValue("text"),
		URL:    r.PostFormValue("url"),
		Model:  r.PostFormValue("model"),
		APIKey: r.PostFormValue("api_key"),
	}
	data := pageData{
		Selected: req.Model,
		Text:     req.Text,
		URL:      req.URL,
	}

	summary, err := h.summarize(r.Context(), req)
	if err != nil {
		data.Error = err.Error()
		h.render(w, statusFor(err), data)
		return
	}

	data.Summary = summary.Text
	data.Chunks = summary.Chunks
	h.render(w, http.StatusOK, data)
}

func (h *Handler) apiSummarize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	summary, err := h.summarize(r.Context(), req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summarizeResponse{
		Summary:   summary.Text,
		Model:     string(summary.Model),
		Chunks:    summary.Chunks,
		ElapsedMs: summary.Elapsed.Milliseconds(),
	})
}

func (h *Handler) apiModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, modelOptions())
}

func (h *Handler) summarize(ctx context.Context, req summarizeRequest) (*entity.Summary, error) {
	text := req.Text
	url := strings.TrimSpace(req.URL)
	if strings.TrimSpace(text) == "" && url == "" {
		return nil, entity.ErrEmptyInput
	}

	model, err := entity.ParseModel(req.Model)
	if err != nil {
		return nil, err
	}
	if err := h.checkLength(text); err != nil {
		return nil, err
	}

	if err := h.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		text, err = h.articles.FetchArticleText(ctx, url)
		if err != nil {
			log.Printf("Failed to fetch article [%s]: %v", url, err)
			return nil, &fetchError{err: err}
		}
		if err := h.checkLength(text); err != nil {
			log.Printf("Article too long [%s]: %v", url, err)
			return nil, err
		}
	}

	return h.summarizer.Summarize(ctx, text, model, req.APIKey)
}

// checkLength applies MaxInputChars to pasted and fetched text alike.
func (h *Handler) checkLength(text string) error {
	if h.maxInputChars <= 0 {
		return nil
	}
	if n := utf8.RuneCountInString(text); n > h.maxInputChars {
		return fmt.Errorf("%w: %d characters (max %d)", errInputTooLong, n, h.maxInputChars)
	}
	return nil
}

func (h *Handler) render(w http.ResponseWriter, status int, data pageData) {
	data.Models = modelOptions()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		log.Printf("Failed to render page: %v", err)
	}
}

func modelOptions() []modelOption {
	options := make([]modelOption, 0, len(entity.Models))
	for _, m := range entity.Models {
		options = append(options, modelOption{
			ID:             string(m),
			Name:           string(m),
			RequiresAPIKey: m.RequiresCredential(),
			Local:          m.IsLocal(),
		})
	}
	return options
}

func statusFor(err error) int {
	var (
		cfgErr      *entity.ConfigurationError
		unsupported *entity.UnsupportedModelError
		backendErr  *entity.BackendError
		fetchErr    *fetchError
	)
	switch {
	case errors.Is(err, entity.ErrEmptyInput),
		errors.Is(err, errInputTooLong),
		errors.As(err, &cfgErr),
		errors.As(err, &unsupported):
		return http.StatusBadRequest
	case errors.As(err, &fetchErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &backendErr):
		return http.StatusBadGateway
	case errors.Is(err, errThrottled):
		return http.StatusTooManyRequests
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}
