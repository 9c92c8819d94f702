package trend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/brandradar/internal/news"
	"github.com/seenimoa/brandradar/internal/sentiment"
	"github.com/seenimoa/brandradar/pkg/models"
	"github.com/seenimoa/brandradar/pkg/utils"
)

// Source names accepted by the dashboard.trend_source setting.
const (
	SourceSynthetic = "synthetic"
	SourceArticles  = "articles"
)

// Comparison holds the data behind the three comparison panels.
type Comparison struct {
	Window    utils.DateWindow      `json:"window"`
	Dates     []time.Time           `json:"dates"`
	Counts    []models.BrandValue   `json:"counts"`
	Trends    []models.BrandSeries  `json:"trends"`
	Sentiment []models.SentimentMix `json:"sentiment"`
	Simulated bool                  `json:"simulated"`
}

// Source produces comparison data for a set of brands over a window.
type Source interface {
	Name() string
	Compare(ctx context.Context, brands []string, windowDays int, now time.Time) (*Comparison, error)
}

func newComparison(windowDays int, now time.Time) *Comparison {
	return &Comparison{
		Window: utils.WindowEndingAt(now, windowDays),
		Dates:  WeeklyDates(now, PointCount(windowDays)),
	}
}

// ════════════════════════════════════════════════════════════════════
// Synthetic
// ════════════════════════════════════════════════════════════════════

// SyntheticSource fills every panel with random values.
type SyntheticSource struct {
	gen *Generator
}

// NewSyntheticSource returns a source backed by gen.
func NewSyntheticSource(gen *Generator) *SyntheticSource {
	if gen == nil {
		gen = NewGenerator(0)
	}
	return &SyntheticSource{gen: gen}
}

func (s *SyntheticSource) Name() string { return SourceSynthetic }

func (s *SyntheticSource) Compare(_ context.Context, brands []string, windowDays int, now time.Time) (*Comparison, error) {
	c := newComparison(windowDays, now)
	c.Simulated = true
	c.Counts = s.gen.ArticleCounts(brands)
	c.Trends = s.gen.BrandTrends(brands, len(c.Dates))
	c.Sentiment = s.gen.SentimentMixes(brands)
	return c, nil
}

// ════════════════════════════════════════════════════════════════════
// Article aggregation
// ════════════════════════════════════════════════════════════════════

// ArticleSource builds the panels from real search results: one search per
// brand over the window, run concurrently. Counts are the number of hits,
// trends bucket publish dates into the weekly axis and the sentiment mix
// classifies each description.
type ArticleSource struct {
	fetcher  news.Fetcher
	language string
	sortBy   string
	max      int
	log      *logrus.Logger
}

// NewArticleSource returns an aggregating source.
func NewArticleSource(f news.Fetcher, language, sortBy string, max int, log *logrus.Logger) *ArticleSource {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ArticleSource{fetcher: f, language: language, sortBy: sortBy, max: max, log: log}
}

func (s *ArticleSource) Name() string { return SourceArticles }

// Compare fails only when every brand search fails; a single failing
// brand is logged and shown with zero values.
func (s *ArticleSource) Compare(ctx context.Context, brands []string, windowDays int, now time.Time) (*Comparison, error) {
	c := newComparison(windowDays, now)
	c.Counts = make([]models.BrandValue, len(brands))
	c.Trends = make([]models.BrandSeries, len(brands))
	c.Sentiment = make([]models.SentimentMix, len(brands))

	var (
		mu   sync.Mutex
		errs []error
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, brand := range brands {
		c.Counts[i] = models.BrandValue{Brand: brand}
		c.Trends[i] = models.BrandSeries{Brand: brand, Values: make([]int, len(c.Dates))}
		c.Sentiment[i] = models.SentimentMix{Brand: brand}

		g.Go(func() error {
			articles, err := s.fetcher.Search(gctx, news.Query{
				Term:     brand,
				From:     c.Window.Start,
				To:       c.Window.End,
				Language: s.language,
				SortBy:   s.sortBy,
				Max:      s.max,
			})
			if err != nil {
				s.log.WithFields(logrus.Fields{
					"provider": s.fetcher.Name(),
					"brand":    brand,
					"status":   news.StatusCode(err),
				}).WithError(err).Warn("brand search failed")
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", brand, err))
				mu.Unlock()
				return nil
			}

			// Each goroutine owns index i; no lock needed for the slices.
			c.Counts[i].Value = len(articles)
			bucket(c.Trends[i].Values, c.Dates, c.Window.Start, articles)
			c.Sentiment[i] = mix(brand, articles)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(brands) > 0 && len(errs) == len(brands) {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

// bucket counts articles per week. Week i covers (dates[i]-7d, dates[i]];
// articles older than dates[0] but inside the window land in week 0.
func bucket(values []int, dates []time.Time, start time.Time, articles []models.Article) {
	n := len(dates)
	if n == 0 {
		return
	}
	last := dates[n-1]
	for _, a := range articles {
		if a.PublishedAt.IsZero() || a.PublishedAt.Before(start) {
			continue
		}
		age := last.Sub(a.PublishedAt)
		idx := n - 1
		if age > 0 {
			idx = n - 1 - int(age/week)
		}
		if idx < 0 {
			idx = 0
		}
		values[idx]++
	}
}

func mix(brand string, articles []models.Article) models.SentimentMix {
	m := models.SentimentMix{Brand: brand}
	for _, a := range articles {
		switch sentiment.Classify(sentiment.Polarity(a.Description)) {
		case sentiment.Positive:
			m.Positive++
		case sentiment.Negative:
			m.Negative++
		default:
			m.Neutral++
		}
	}
	return m
}

// NewSource returns the source named by name. An empty name selects the
// synthetic source; the articles source requires a fetcher.
func NewSource(name string, gen *Generator, f news.Fetcher, language, sortBy string, max int, log *logrus.Logger) (Source, error) {
	switch name {
	case SourceSynthetic, "":
		return NewSyntheticSource(gen), nil
	case SourceArticles:
		if f == nil {
			return nil, errors.New("trend: articles source needs a news fetcher")
		}
		return NewArticleSource(f, language, sortBy, max, log), nil
	default:
		return nil, fmt.Errorf("unknown trend source: %s", name)
	}
}
