package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	fetchTimeout = 5 * time.Second
	maxPageBytes = 2 << 20
	userAgent    = "Assessment-Recommender/1.0"
)

var (
	scriptPattern = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	stylePattern  = regexp.MustCompile(`(?is)<style\b.*?</style>`)
	tagPattern    = regexp.MustCompile(`<[^>]*>`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

// WebPageService fetches a job posting URL and reduces it to plain text.
type WebPageService interface {
	FetchText(ctx context.Context, pageURL string) (string, error)
}

type webPageService struct {
	client *http.Client
}

func NewWebPageService() WebPageService {
	return &webPageService{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// FetchText implements WebPageService.
func (w *webPageService) FetchText(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("invalid job URL: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return "", &ExternalServiceError{Service: "job-url", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ExternalServiceError{Service: "job-url", Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", &ExternalServiceError{Service: "job-url", Err: err}
	}

	return ExtractTextFromHTML(string(body)), nil
}

// ExtractTextFromHTML strips script and style blocks, removes tags, and
// collapses whitespace.
func ExtractTextFromHTML(html string) string {
	text := scriptPattern.ReplaceAllString(html, " ")
	text = stylePattern.ReplaceAllString(text, " ")
	text = tagPattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
}
