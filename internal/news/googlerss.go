package news

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/seenimoa/brandradar/pkg/models"
)

const googleRSSBaseURL = "https://news.google.com"

// GoogleRSSClient searches the keyless Google News RSS feed. It is safe
// for concurrent use; gofeed parsers are not, so each search builds its own.
type GoogleRSSClient struct {
	base
}

// NewGoogleRSSClient creates a Google News RSS client.
func NewGoogleRSSClient(opts Options) *GoogleRSSClient {
	return &GoogleRSSClient{base: newBase(googleRSSBaseURL, opts)}
}

var _ Fetcher = (*GoogleRSSClient)(nil)

// Name returns the provider name.
func (c *GoogleRSSClient) Name() string { return ProviderGoogleRSS }

// Search fetches /rss/search and parses it with gofeed. The date window
// is expressed with the "when:<N>d" search operator.
func (c *GoogleRSSClient) Search(ctx context.Context, q Query) ([]models.Article, error) {
	if q.Term == "" {
		return nil, ErrEmptyQuery
	}

	term := q.Term
	if !q.From.IsZero() && !q.To.IsZero() {
		days := int(math.Ceil(q.To.Sub(q.From).Hours() / 24))
		if days > 0 {
			term = fmt.Sprintf("%s when:%dd", term, days)
		}
	}

	params := url.Values{}
	params.Set("q", term)
	if lang := q.Language; lang != "" {
		region := strings.ToUpper(lang)
		params.Set("hl", lang)
		params.Set("gl", region)
		params.Set("ceid", region+":"+lang)
	}

	body, err := c.get(ctx, c.baseURL+"/rss/search?"+params.Encode(), "application/rss+xml, application/xml")
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &StatusError{StatusCode: http.StatusOK, Status: "malformed", Message: err.Error()}
	}

	articles := make([]models.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		a := models.Article{
			Title:       item.Title,
			URL:         item.Link,
			Description: cleanHTML(item.Description),
			Source:      "Google News",
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = *item.PublishedParsed
		}
		articles = append(articles, a)
		if q.Max > 0 && len(articles) == q.Max {
			break
		}
	}
	return articles, nil
}
