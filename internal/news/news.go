// Package news provides brand news search against third-party news APIs.
// It defines a common Fetcher interface and concrete clients for NewsAPI,
// GNews, SerpApi (Google News engine) and the keyless Google News RSS feed.
package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/seenimoa/brandradar/pkg/models"
)

// Fetcher searches a news source for articles mentioning a term.
// Implementations make a single attempt: no retries, no caching.
type Fetcher interface {
	// Name returns the provider name, e.g. "newsapi".
	Name() string

	// Search returns articles in the order the provider ranked them.
	Search(ctx context.Context, q Query) ([]models.Article, error)
}

// Query describes one search request.
type Query struct {
	Term     string
	From     time.Time
	To       time.Time
	Language string // ISO 639-1, e.g. "fi"
	SortBy   string // "publishedAt" = most recent first
	Max      int    // result-count cap, 0 = provider default
}

// --- Errors ---

// ErrEmptyQuery is returned when the search term is blank.
var ErrEmptyQuery = errors.New("news: empty search term")

// HTTPError is returned for a non-200 response.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// StatusError is returned when the response is 200 but the body reports
// a failure (status field other than the provider's success value).
type StatusError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d: response status %q", e.StatusCode, e.Status)
	}
	return fmt.Sprintf("HTTP %d: response status %q: %s", e.StatusCode, e.Status, e.Message)
}

// StatusCode extracts the HTTP status code carried by err, or 0.
func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// --- Shared HTTP plumbing ---

// DefaultUserAgent is the user agent string used for outbound requests.
const DefaultUserAgent = "BrandRadar/1.0 (+https://github.com/seenimoa/brandradar)"

// base holds what every client shares: the endpoint, the HTTP client and
// an optional outbound throttle.
type base struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

func newBase(defaultURL string, opts Options) base {
	b := base{
		baseURL: strings.TrimRight(defaultURL, "/"),
		client:  opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		b.baseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	if b.client == nil {
		b.client = http.DefaultClient
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		b.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return b
}

// get performs one GET and returns the body of a 200 response.
func (b base) get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", stripURL(err))
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", accept)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET: %w", stripURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// stripURL drops the request URL from a *url.Error. The URL carries the
// API key in its query string.
func stripURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}

// getJSON performs one GET and decodes a 200 JSON body into v.
func (b base) getJSON(ctx context.Context, rawURL string, v any) error {
	body, err := b.get(ctx, rawURL, "application/json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &StatusError{StatusCode: http.StatusOK, Status: "malformed", Message: err.Error()}
	}
	return nil
}

// --- Helpers ---

// cleanHTML strips HTML tags from a string using goquery.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// parseTime parses the RFC 3339 timestamps the JSON providers return.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Limit returns at most n articles, preserving order.
func Limit(articles []models.Article, n int) []models.Article {
	if n >= 0 && len(articles) > n {
		return articles[:n]
	}
	return articles
}
