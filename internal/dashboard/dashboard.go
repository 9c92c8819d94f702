// Package dashboard builds the two dashboard pages. View builders are pure
// apart from the news fetch and the trend source; rendering and event
// dispatch live in render.go and events.go.
package dashboard

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/seenimoa/brandradar/internal/chart"
	"github.com/seenimoa/brandradar/internal/config"
	"github.com/seenimoa/brandradar/internal/news"
	"github.com/seenimoa/brandradar/internal/sentiment"
	"github.com/seenimoa/brandradar/internal/session"
	"github.com/seenimoa/brandradar/internal/trend"
	"github.com/seenimoa/brandradar/pkg/models"
	"github.com/seenimoa/brandradar/pkg/utils"
)

// Dashboard holds everything the pages need.
type Dashboard struct {
	cfg     config.DashboardConfig
	newsCfg config.NewsConfig
	fetcher news.Fetcher
	source  trend.Source
	gen     *trend.Generator
	log     *logrus.Logger
	now     func() time.Time
	tmpl    *template.Template
}

// Options overrides the collaborators New would otherwise build from config.
type Options struct {
	Fetcher   news.Fetcher
	Source    trend.Source
	Generator *trend.Generator
	Logger    *logrus.Logger
	Now       func() time.Time
}

// New creates a dashboard from config.
func New(cfg *config.Config, opts Options) (*Dashboard, error) {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Now == nil {
		opts.Now = utils.NowHelsinki
	}
	if opts.Generator == nil {
		opts.Generator = trend.NewGenerator(cfg.Dashboard.Seed)
	}
	if opts.Fetcher == nil {
		f, err := news.FromConfig(cfg)
		if err != nil {
			return nil, err
		}
		opts.Fetcher = f
	}
	if opts.Source == nil {
		src, err := trend.NewSource(cfg.Dashboard.TrendSource, opts.Generator, opts.Fetcher,
			cfg.News.Language, cfg.News.SortBy, cfg.News.MaxResults, opts.Logger)
		if err != nil {
			return nil, err
		}
		opts.Source = src
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	dcfg := cfg.Dashboard
	if len(dcfg.Brands) == 0 {
		dcfg.Brands = models.DefaultBrands
	}

	return &Dashboard{
		cfg:     dcfg,
		newsCfg: cfg.News,
		fetcher: opts.Fetcher,
		source:  opts.Source,
		gen:     opts.Generator,
		log:     opts.Logger,
		now:     opts.Now,
		tmpl:    tmpl,
	}, nil
}

// Brands returns the fixed brand list.
func (d *Dashboard) Brands() []string { return d.cfg.Brands }

// DefaultQuery returns the query shown when the user has typed nothing yet.
func (d *Dashboard) DefaultQuery() string { return d.cfg.DefaultQuery }

// SelectBrands resolves a brand selection. When set is false the default
// selection applies; otherwise only known brands are kept, in list order.
// An explicit empty selection stays empty.
func (d *Dashboard) SelectBrands(raw []string, set bool) []string {
	if !set {
		return append([]string(nil), d.cfg.DefaultBrands...)
	}
	want := make(map[string]bool, len(raw))
	for _, r := range raw {
		for _, b := range strings.Split(r, ",") {
			if b = strings.TrimSpace(b); b != "" {
				want[strings.ToLower(b)] = true
			}
		}
	}
	out := []string{}
	for _, b := range d.cfg.Brands {
		if want[strings.ToLower(b)] {
			out = append(out, b)
		}
	}
	return out
}

// ════════════════════════════════════════════════════════════════════
// News page
// ════════════════════════════════════════════════════════════════════

// NewsView is the data behind the news page.
type NewsView struct {
	Query      string                 `json:"query"`
	Searched   bool                   `json:"searched"`
	Heading    string                 `json:"heading,omitempty"`
	Provider   string                 `json:"provider"`
	Window     utils.DateWindow       `json:"window"`
	Articles   []models.ScoredArticle `json:"articles"`
	Error      string                 `json:"error,omitempty"`
	StatusCode int                    `json:"status_code,omitempty"`
	Info       string                 `json:"info,omitempty"`
	Trend      []trend.Point          `json:"trend,omitempty"`
	TrendChart template.HTML          `json:"-"`
}

// NewsWindowDays is the length of the news search window. It is fixed.
const NewsWindowDays = 180

// News builds the news page for query. An empty query yields an empty view
// and no request is made; any other text, whitespace included, is searched
// as typed. Fetch failures are reported in the view; the simulated trend is
// rendered regardless.
func (d *Dashboard) News(ctx context.Context, query string) *NewsView {
	v := &NewsView{Query: query, Provider: d.fetcher.Name(), Articles: []models.ScoredArticle{}}
	if query == "" {
		return v
	}

	now := d.now()
	v.Searched = true
	v.Heading = fmt.Sprintf(NewsHeadingFmt, query)
	v.Window = utils.WindowEndingAt(now, NewsWindowDays)

	articles, err := d.fetcher.Search(ctx, news.Query{
		Term:     query,
		From:     v.Window.Start,
		To:       v.Window.End,
		Language: d.newsCfg.Language,
		SortBy:   d.newsCfg.SortBy,
		Max:      d.newsCfg.MaxResults,
	})
	switch {
	case err != nil:
		v.StatusCode = news.StatusCode(err)
		if v.StatusCode != 0 {
			v.Error = fmt.Sprintf(NewsFetchFailed, v.StatusCode)
		} else {
			v.Error = fmt.Sprintf(NewsFetchFailedE, err)
		}
		d.log.WithFields(logrus.Fields{
			"provider": d.fetcher.Name(),
			"query":    query,
			"status":   v.StatusCode,
		}).WithError(err).Warn("news fetch failed")
	case len(articles) == 0:
		v.Info = NewsNoResults
	default:
		for _, a := range news.Limit(articles, d.newsCfg.DisplayLimit) {
			v.Articles = append(v.Articles, scoreArticle(a))
		}
	}

	v.Trend = d.gen.SearchTrend(now)
	v.TrendChart = template.HTML(searchTrendChart(v.Trend))
	return v
}

func scoreArticle(a models.Article) models.ScoredArticle {
	p, c := sentiment.Score(a.Description)
	return models.ScoredArticle{
		Article:   a,
		Polarity:  p,
		Sentiment: c.String(),
		Label:     c.Display(),
	}
}

func searchTrendChart(points []trend.Point) string {
	dates := make([]time.Time, len(points))
	values := make([]int, len(points))
	for i, p := range points {
		dates[i], values[i] = p.Date, p.Value
	}
	cfg := chart.DefaultConfig()
	cfg.Height = 300
	return chart.LineChart([]chart.Series{{Values: values}}, dates, cfg)
}

// ════════════════════════════════════════════════════════════════════
// Comparison page
// ════════════════════════════════════════════════════════════════════

// WindowButton is one of the three window controls.
type WindowButton struct {
	Value  int    `json:"value"`
	Key    string `json:"key"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// ComparisonView is the data behind the comparison page.
type ComparisonView struct {
	Brands     []string          `json:"brands"`
	Selected   []string          `json:"selected"`
	WindowDays int               `json:"window_days"`
	Buttons    []WindowButton    `json:"buttons"`
	Range      utils.DateWindow  `json:"range"`
	Caption    string            `json:"caption"`
	Source     string            `json:"source"`
	Data       *trend.Comparison `json:"data,omitempty"`
	Error      string            `json:"error,omitempty"`

	CountChart     template.HTML `json:"-"`
	TrendChart     template.HTML `json:"-"`
	SentimentChart template.HTML `json:"-"`
}

// Comparison builds the comparison page for the session's window and the
// given (already resolved) selection. No selection means no panels.
func (d *Dashboard) Comparison(ctx context.Context, sess *session.Session, selected []string) *ComparisonView {
	now := d.now()
	w := sess.Window()

	v := &ComparisonView{
		Brands:     d.cfg.Brands,
		Selected:   selected,
		WindowDays: w.Days(),
		Range:      utils.WindowEndingAt(now, w.Days()),
		Source:     d.source.Name(),
	}
	v.Caption = fmt.Sprintf(ComparisonCaptionFmt, v.Range.String())
	for _, b := range session.Windows {
		v.Buttons = append(v.Buttons, WindowButton{Value: b.Days(), Key: b.Key(), Label: b.Label(), Active: b == w})
	}
	if v.Selected == nil {
		v.Selected = []string{}
	}
	if len(selected) == 0 {
		return v
	}

	data, err := d.source.Compare(ctx, selected, w.Days(), now)
	if err != nil {
		v.Error = fmt.Sprintf(ComparisonFailed, err)
		d.log.WithField("source", d.source.Name()).WithError(err).Warn("comparison failed")
		return v
	}

	v.Data = data
	v.CountChart = template.HTML(countChart(data))
	v.TrendChart = template.HTML(trendChart(data))
	v.SentimentChart = template.HTML(sentimentChart(data))
	return v
}

func panelConfig() chart.Config {
	cfg := chart.DefaultConfig().WithTheme(chart.Dark)
	cfg.Width, cfg.Height = 420, 280
	cfg.MarginLeft, cfg.MarginRight = 40, 10
	return cfg
}

func countChart(c *trend.Comparison) string {
	bars := make([]chart.Bar, len(c.Counts))
	for i, bv := range c.Counts {
		bars[i] = chart.Bar{Label: bv.Brand, Value: bv.Value}
	}
	return chart.BarChart(bars, panelConfig())
}

func trendChart(c *trend.Comparison) string {
	series := make([]chart.Series, len(c.Trends))
	for i, s := range c.Trends {
		series[i] = chart.Series{Name: s.Brand, Values: s.Values}
	}
	return chart.LineChart(series, c.Dates, panelConfig())
}

func sentimentChart(c *trend.Comparison) string {
	cats := make([]chart.Category, len(sentiment.Categories))
	for i, cat := range sentiment.Categories {
		cats[i] = chart.Category{Name: cat.Short(), Color: cat.Color()}
	}
	groups := make([]chart.Group, len(c.Sentiment))
	for i, m := range c.Sentiment {
		counts := m.Counts()
		groups[i] = chart.Group{Label: m.Brand, Values: counts[:]}
	}
	return chart.GroupedBarChart(groups, cats, panelConfig())
}
