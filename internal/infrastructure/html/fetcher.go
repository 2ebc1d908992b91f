package html

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxHTMLBytes   = int64(2 * 1024 * 1024)
	minContentLen  = 100
	defaultTimeout = 15 * time.Second
	userAgent      = "MultiAISummarizer/1.0"
)

var contentSelectors = []string{
	"article",
	"main",
	".post-content",
	".entry-content",
	".article-body",
	".article-content",
	"#content",
	".content",
}

const noiseSelectors = "script, style, noscript, nav, header, footer, aside, form, .ad, .advertisement"

// ArticleFetcher はWebページを取得し本文を抽出します
type ArticleFetcher struct {
	client *http.Client
}

// NewArticleFetcher は新しいArticleFetcherを生成します
func NewArticleFetcher(timeout time.Duration) *ArticleFetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &ArticleFetcher{client: &http.Client{Timeout: timeout}}
}

// FetchArticleText はURLから記事本文を取得します
func (f *ArticleFetcher) FetchArticleText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("unexpected status code: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxHTMLBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	text := ExtractMainContent(doc)
	if text == "" {
		return "", fmt.Errorf("empty article content")
	}

	return text, nil
}

// ExtractMainContent returns the whitespace-normalized text of the first
// content container long enough to be an article, falling back to the whole body.
func ExtractMainContent(doc *goquery.Document) string {
	doc.Find(noiseSelectors).Remove()

	for _, selector := range contentSelectors {
		selection := doc.Find(selector)
		if selection.Length() == 0 {
			continue
		}
		text := normalizeSpace(selection.Text())
		if len(text) >= minContentLen {
			return text
		}
	}

	text := normalizeSpace(doc.Find("body").Text())
	if text == "" {
		text = normalizeSpace(doc.Text())
	}
	return text
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
