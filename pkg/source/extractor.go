package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/markusmobius/go-trafilatura"
)

// HTTPExtractor pulls the readable text of an article page, used to fill items published without a summary
type HTTPExtractor struct {
	client    *http.Client
	userAgent string
}

// NewHTTPExtractor makes an extractor with the given per-page timeout
func NewHTTPExtractor(timeout time.Duration, userAgent string) *HTTPExtractor {
	return &HTTPExtractor{client: &http.Client{Timeout: timeout}, userAgent: userAgent}
}

// Extract fetches the page and returns its main text
func (e *HTTPExtractor) Extract(ctx context.Context, link string) (string, error) {
	pageURL, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	if pageURL.Scheme == "" || pageURL.Host == "" {
		return "", fmt.Errorf("invalid URL: %q", link)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	setHeaders(req, e.userAgent, pageRequest)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page %s: %w", link, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, link)
	}

	result, err := trafilatura.Extract(resp.Body, trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		Deduplicate:     true,
		OriginalURL:     pageURL,
	})
	if err != nil {
		return "", fmt.Errorf("extract text from %s: %w", link, err)
	}
	if result == nil || strings.TrimSpace(result.ContentText) == "" {
		return "", fmt.Errorf("no text in %s", link)
	}
	return strings.TrimSpace(result.ContentText), nil
}
