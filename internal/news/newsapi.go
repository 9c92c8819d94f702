package news

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/seenimoa/brandradar/pkg/models"
)

const newsAPIBaseURL = "https://newsapi.org"

// NewsAPIClient searches the NewsAPI /v2/everything endpoint.
type NewsAPIClient struct {
	base
	apiKey string
}

// NewNewsAPIClient creates a NewsAPI client.
func NewNewsAPIClient(apiKey string, opts Options) *NewsAPIClient {
	return &NewsAPIClient{base: newBase(newsAPIBaseURL, opts), apiKey: apiKey}
}

var _ Fetcher = (*NewsAPIClient)(nil)

type newsAPIResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// Name returns the provider name.
func (c *NewsAPIClient) Name() string { return ProviderNewsAPI }

// Search issues one GET to /v2/everything. Success requires HTTP 200
// and status "ok".
func (c *NewsAPIClient) Search(ctx context.Context, q Query) ([]models.Article, error) {
	if q.Term == "" {
		return nil, ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("q", q.Term)
	if !q.From.IsZero() {
		params.Set("from", q.From.Format("2006-01-02"))
	}
	if !q.To.IsZero() {
		params.Set("to", q.To.Format("2006-01-02"))
	}
	if q.SortBy != "" {
		params.Set("sortBy", q.SortBy)
	}
	if q.Language != "" {
		params.Set("language", q.Language)
	}
	if q.Max > 0 {
		params.Set("pageSize", strconv.Itoa(q.Max))
	}
	params.Set("apiKey", c.apiKey)

	var resp newsAPIResponse
	if err := c.getJSON(ctx, c.baseURL+"/v2/everything?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	if resp.Status != "ok" {
		return nil, &StatusError{StatusCode: http.StatusOK, Status: resp.Status, Message: resp.Message}
	}

	articles := make([]models.Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		articles = append(articles, models.Article{
			Title:       a.Title,
			Description: cleanHTML(a.Description),
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: parseTime(a.PublishedAt),
		})
	}
	return articles, nil
}
