package news

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/seenimoa/brandradar/pkg/models"
)

const gnewsBaseURL = "https://gnews.io"

// GNewsClient searches the GNews /api/v4/search endpoint.
type GNewsClient struct {
	base
	apiKey string
}

// NewGNewsClient creates a GNews client.
func NewGNewsClient(apiKey string, opts Options) *GNewsClient {
	return &GNewsClient{base: newBase(gnewsBaseURL, opts), apiKey: apiKey}
}

var _ Fetcher = (*GNewsClient)(nil)

type gnewsResponse struct {
	TotalArticles int `json:"totalArticles"`
	Articles      []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Name returns the provider name.
func (c *GNewsClient) Name() string { return ProviderGNews }

// Search issues one GET to /api/v4/search. GNews has no status field;
// any 200 with a decodable body is a success.
func (c *GNewsClient) Search(ctx context.Context, q Query) ([]models.Article, error) {
	if q.Term == "" {
		return nil, ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("q", q.Term)
	if !q.From.IsZero() {
		params.Set("from", q.From.UTC().Format(time.RFC3339))
	}
	if !q.To.IsZero() {
		params.Set("to", q.To.UTC().Format(time.RFC3339))
	}
	if q.SortBy != "" {
		params.Set("sortby", q.SortBy)
	}
	if q.Language != "" {
		params.Set("lang", q.Language)
	}
	if q.Max > 0 {
		params.Set("max", strconv.Itoa(q.Max))
	}
	params.Set("apikey", c.apiKey)

	var resp gnewsResponse
	if err := c.getJSON(ctx, c.baseURL+"/api/v4/search?"+params.Encode(), &resp); err != nil {
		return nil, err
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
