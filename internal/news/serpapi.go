package news

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/seenimoa/brandradar/pkg/models"
)

const serpAPIBaseURL = "https://serpapi.com"

// serpAPIDateLayout is the format of news_results[].date.
const serpAPIDateLayout = "01/02/2006, 03:04 PM, -0700 MST"

// SerpAPIClient searches Google News through SerpApi. It authenticates
// with the search-API key rather than the news-API key.
type SerpAPIClient struct {
	base
	apiKey string
}

// NewSerpAPIClient creates a SerpApi Google News client.
func NewSerpAPIClient(apiKey string, opts Options) *SerpAPIClient {
	return &SerpAPIClient{base: newBase(serpAPIBaseURL, opts), apiKey: apiKey}
}

var _ Fetcher = (*SerpAPIClient)(nil)

type serpAPIResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Date    string `json:"date"`
	Source  struct {
		Name string `json:"name"`
	} `json:"source"`
	Stories []serpAPIResult `json:"stories"`
}

type serpAPIResponse struct {
	SearchMetadata struct {
		Status string `json:"status"`
	} `json:"search_metadata"`
	Error       string          `json:"error"`
	NewsResults []serpAPIResult `json:"news_results"`
}

// Name returns the provider name.
func (c *SerpAPIClient) Name() string { return ProviderSerpAPI }

// Search issues one GET to /search.json with engine=google_news. The
// engine has no date parameters, so the window is applied to results
// that carry a parseable date.
func (c *SerpAPIClient) Search(ctx context.Context, q Query) ([]models.Article, error) {
	if q.Term == "" {
		return nil, ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("engine", "google_news")
	params.Set("q", q.Term)
	if q.Language != "" {
		params.Set("hl", q.Language)
		params.Set("gl", q.Language)
	}
	if q.SortBy == "publishedAt" {
		params.Set("so", "1") // sort by date
	}
	params.Set("api_key", c.apiKey)

	var resp serpAPIResponse
	if err := c.getJSON(ctx, c.baseURL+"/search.json?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" || resp.SearchMetadata.Status != "Success" {
		return nil, &StatusError{StatusCode: http.StatusOK, Status: resp.SearchMetadata.Status, Message: resp.Error}
	}

	var articles []models.Article
	for _, r := range resp.NewsResults {
		if r.Link == "" && len(r.Stories) > 0 {
			r = r.Stories[0]
		}
		if r.Link == "" {
			continue
		}
		a := models.Article{
			Title:       r.Title,
			Description: cleanHTML(r.Snippet),
			URL:         r.Link,
			Source:      r.Source.Name,
		}
		if t, err := time.Parse(serpAPIDateLayout, r.Date); err == nil {
			a.PublishedAt = t
		}
		if !inWindow(a.PublishedAt, q.From, q.To) {
			continue
		}
		articles = append(articles, a)
		if q.Max > 0 && len(articles) == q.Max {
			break
		}
	}
	return articles, nil
}

// inWindow reports whether t falls inside [from, to+1d). Unknown dates
// are kept.
func inWindow(t, from, to time.Time) bool {
	if t.IsZero() {
		return true
	}
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to.AddDate(0, 0, 1)) {
		return false
	}
	return true
}
