package news

import (
	"fmt"
	"net/http"

	"github.com/seenimoa/brandradar/internal/config"
)

// Provider names accepted by New.
const (
	ProviderNewsAPI   = "newsapi"
	ProviderGNews     = "gnews"
	ProviderSerpAPI   = "serpapi"
	ProviderGoogleRSS = "googlerss"
)

// Providers lists every supported provider name.
func Providers() []string {
	return []string{ProviderNewsAPI, ProviderGNews, ProviderSerpAPI, ProviderGoogleRSS}
}

// Options carries the settings shared by all clients.
type Options struct {
	BaseURL    string       // endpoint override, used by tests and proxies
	HTTPClient *http.Client // nil = http.DefaultClient (no timeout override)
	RateLimit  float64      // requests/second, 0 = unlimited
	Burst      int
}

// New creates a fetcher by provider name.
func New(provider string, newsKey, searchKey string, opts Options) (Fetcher, error) {
	switch provider {
	case ProviderNewsAPI, "":
		return NewNewsAPIClient(newsKey, opts), nil
	case ProviderGNews:
		return NewGNewsClient(newsKey, opts), nil
	case ProviderSerpAPI:
		return NewSerpAPIClient(searchKey, opts), nil
	case ProviderGoogleRSS:
		return NewGoogleRSSClient(opts), nil
	default:
		return nil, fmt.Errorf("unknown news provider: %s", provider)
	}
}

// FromConfig creates the configured fetcher.
func FromConfig(cfg *config.Config) (Fetcher, error) {
	return New(cfg.News.Provider, cfg.Keys.NewsAPIKey, cfg.Keys.SearchAPIKey, Options{
		BaseURL:   cfg.News.BaseURL,
		RateLimit: cfg.News.RateLimit,
		Burst:     cfg.News.Burst,
	})
}
