// Package trend produces the weekly series behind the trend and comparison
// charts. The default source is synthetic: uniformly random values that
// stand in for real metrics and change on every render.
package trend

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/seenimoa/brandradar/pkg/models"
)

// Value ranges, inclusive.
const (
	SearchTrendPoints = 26

	SearchTrendMin = 20
	SearchTrendMax = 100

	ArticleCountMin = 5
	ArticleCountMax = 20

	BrandTrendMin = 10
	BrandTrendMax = 100

	SentimentMin = 1
	SentimentMax = 5
)

const week = 7 * 24 * time.Hour

// PointCount returns the number of weekly points covering a window:
// floor(windowDays/7) + 1.
func PointCount(windowDays int) int {
	if windowDays < 0 {
		return 1
	}
	return windowDays/7 + 1
}

// WeeklyDates returns n timestamps spaced one week apart, oldest first,
// the last one equal to now.
func WeeklyDates(now time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = now.Add(-time.Duration(n-1-i) * week)
	}
	return dates
}

// Point is one sample of a dated series.
type Point struct {
	Date  time.Time `json:"date"`
	Value int       `json:"value"`
}

// Generator draws the synthetic values. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator. A zero seed picks a random one, so
// every process (and every render) sees fresh values.
func NewGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Int returns a uniform integer in [lo, hi].
func (g *Generator) Int(lo, hi int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.intn(lo, hi)
}

// Ints returns n uniform integers in [lo, hi].
func (g *Generator) Ints(n, lo, hi int) []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]int, n)
	for i := range out {
		out[i] = g.intn(lo, hi)
	}
	return out
}

func (g *Generator) intn(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.IntN(hi-lo+1)
}

// SearchTrend returns the simulated 26-week search trend ending at now.
func (g *Generator) SearchTrend(now time.Time) []Point {
	dates := WeeklyDates(now, SearchTrendPoints)
	values := g.Ints(len(dates), SearchTrendMin, SearchTrendMax)
	points := make([]Point, len(dates))
	for i, d := range dates {
		points[i] = Point{Date: d, Value: values[i]}
	}
	return points
}

// ArticleCounts draws one article count per brand.
func (g *Generator) ArticleCounts(brands []string) []models.BrandValue {
	out := make([]models.BrandValue, len(brands))
	for i, b := range brands {
		out[i] = models.BrandValue{Brand: b, Value: g.Int(ArticleCountMin, ArticleCountMax)}
	}
	return out
}

// BrandTrends draws n weekly values per brand.
func (g *Generator) BrandTrends(brands []string, n int) []models.BrandSeries {
	out := make([]models.BrandSeries, len(brands))
	for i, b := range brands {
		out[i] = models.BrandSeries{Brand: b, Values: g.Ints(n, BrandTrendMin, BrandTrendMax)}
	}
	return out
}

// SentimentMixes draws a positive/neutral/negative triple per brand.
func (g *Generator) SentimentMixes(brands []string) []models.SentimentMix {
	out := make([]models.SentimentMix, len(brands))
	for i, b := range brands {
		v := g.Ints(3, SentimentMin, SentimentMax)
		out[i] = models.SentimentMix{Brand: b, Positive: v[0], Neutral: v[1], Negative: v[2]}
	}
	return out
}
