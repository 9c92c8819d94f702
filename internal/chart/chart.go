// Package chart renders the dashboard charts as inline SVG. Every function
// is a pure rendering sink: data in, markup out.
package chart

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/seenimoa/brandradar/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// Config & Themes
// ════════════════════════════════════════════════════════════════════

// Theme holds the colours of one chart style.
type Theme struct {
	Background string
	Grid       string
	Axis       string
	Text       string
	Palette    []string
}

// Light is used for the news page search trend.
var Light = Theme{
	Background: "#ffffff",
	Grid:       "#e8e8e8",
	Axis:       "#999999",
	Text:       "#333333",
	Palette:    []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b"},
}

// Dark is used for the comparison panels: black background, white axes.
var Dark = Theme{
	Background: "#000000",
	Grid:       "#333333",
	Axis:       "#ffffff",
	Text:       "#ffffff",
	Palette:    []string{"#4fc3f7", "#ffb74d", "#81c784", "#e57373", "#ba68c8", "#fff176"},
}

// Config holds rendering parameters.
type Config struct {
	Width        int
	Height       int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	MarginLeft   int
	FontSize     int
	Title        string
	YLabel       string
	Theme        Theme
}

// DefaultConfig returns a 800x360 light chart.
func DefaultConfig() Config {
	return Config{
		Width:        800,
		Height:       360,
		MarginTop:    40,
		MarginRight:  30,
		MarginBottom: 50,
		MarginLeft:   60,
		FontSize:     11,
		Theme:        Light,
	}
}

// WithTheme returns a copy of c using t.
func (c Config) WithTheme(t Theme) Config {
	c.Theme = t
	return c
}

// WithTitle returns a copy of c with the given title.
func (c Config) WithTitle(title string) Config {
	c.Title = title
	return c
}

func (c Config) normalize() Config {
	d := DefaultConfig()
	if c.Width == 0 {
		c.Width = d.Width
	}
	if c.Height == 0 {
		c.Height = d.Height
	}
	if c.MarginTop == 0 && c.MarginRight == 0 && c.MarginBottom == 0 && c.MarginLeft == 0 {
		c.MarginTop, c.MarginRight, c.MarginBottom, c.MarginLeft = d.MarginTop, d.MarginRight, d.MarginBottom, d.MarginLeft
	}
	if c.FontSize == 0 {
		c.FontSize = d.FontSize
	}
	if c.Theme.Background == "" {
		c.Theme = d.Theme
	}
	return c
}

func (c Config) plotArea() (x, y, w, h int) {
	return c.MarginLeft, c.MarginTop,
		c.Width - c.MarginLeft - c.MarginRight,
		c.Height - c.MarginTop - c.MarginBottom
}

func (c Config) color(i int) string {
	return c.Theme.Palette[i%len(c.Theme.Palette)]
}

// ════════════════════════════════════════════════════════════════════
// Line Chart
// ════════════════════════════════════════════════════════════════════

// Series is one named line.
type Series struct {
	Name   string
	Values []int
	Color  string // optional, palette colour when empty
}

// LineChart draws one line per series over a shared date axis. Ticks are
// labelled "Jan 06". A legend is drawn when there is more than one series
// or the single series is named.
func LineChart(series []Series, dates []time.Time, cfg Config) string {
	cfg = cfg.normalize()
	n := len(dates)
	if len(series) == 0 || n == 0 {
		return emptySVG(cfg, "Ei dataa")
	}

	lo, hi := math.MaxInt, math.MinInt
	for _, s := range series {
		for _, v := range s.Values {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	if lo > hi {
		return emptySVG(cfg, "Ei dataa")
	}
	minVal, maxVal := paddedRange(float64(lo), float64(hi))

	px, py, pw, ph := cfg.plotArea()
	xAt := func(i int) float64 {
		if n == 1 {
			return float64(px) + float64(pw)/2
		}
		return float64(px) + float64(i)*float64(pw)/float64(n-1)
	}
	yAt := func(v float64) float64 {
		return float64(py+ph) - (v-minVal)/(maxVal-minVal)*float64(ph)
	}

	var sb strings.Builder
	open(&sb, cfg)
	yGrid(&sb, cfg, minVal, maxVal)
	axes(&sb, cfg)

	for si, s := range series {
		color := s.Color
		if color == "" {
			color = cfg.color(si)
		}
		parts := make([]string, 0, len(s.Values))
		var markers strings.Builder
		for i, v := range s.Values {
			if i >= n {
				break
			}
			cmd := "L"
			if i == 0 {
				cmd = "M"
			}
			x, y := xAt(i), yAt(float64(v))
			parts = append(parts, fmt.Sprintf("%s%.1f,%.1f", cmd, x, y))
			fmt.Fprintf(&markers, `<circle class="marker" cx="%.1f" cy="%.1f" r="3" fill="%s"/>`, x, y, color)
		}
		if len(parts) > 1 {
			fmt.Fprintf(&sb, `<path class="series" d="%s" fill="none" stroke="%s" stroke-width="2"/>`,
				strings.Join(parts, " "), color)
		}
		sb.WriteString(markers.String())
	}

	if len(series) > 1 || series[0].Name != "" {
		names := make([]string, len(series))
		colors := make([]string, len(series))
		for i, s := range series {
			names[i] = s.Name
			colors[i] = s.Color
			if colors[i] == "" {
				colors[i] = cfg.color(i)
			}
		}
		legend(&sb, cfg, names, colors)
	}

	// About six ticks regardless of window length.
	step := max(1, n/6)
	for i := 0; i < n; i += step {
		fmt.Fprintf(&sb, `<text class="tick" x="%.1f" y="%d" font-size="%d" fill="%s" text-anchor="middle">%s</text>`,
			xAt(i), py+ph+18, cfg.FontSize-1, cfg.Theme.Text, escapeXML(utils.FormatMonthYear(dates[i])))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ════════════════════════════════════════════════════════════════════
// Bar Charts
// ════════════════════════════════════════════════════════════════════

// Bar is one labelled bar.
type Bar struct {
	Label string
	Value int
	Color string // optional
}

// BarChart draws a single-series vertical bar chart, one bar per item,
// with the value printed above each bar.
func BarChart(bars []Bar, cfg Config) string {
	cfg = cfg.normalize()
	if len(bars) == 0 {
		return emptySVG(cfg, "Ei dataa")
	}

	hi := 0
	for _, b := range bars {
		hi = max(hi, b.Value)
	}
	maxVal := niceMax(float64(hi))

	px, py, pw, ph := cfg.plotArea()
	slot := float64(pw) / float64(len(bars))
	barW := math.Min(slot*0.6, 80)

	var sb strings.Builder
	open(&sb, cfg)
	yGrid(&sb, cfg, 0, maxVal)
	axes(&sb, cfg)

	for i, b := range bars {
		color := b.Color
		if color == "" {
			color = cfg.color(0)
		}
		cx := float64(px) + slot*(float64(i)+0.5)
		h := float64(b.Value) / maxVal * float64(ph)
		y := float64(py+ph) - h
		fmt.Fprintf(&sb, `<rect class="bar" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`,
			cx-barW/2, y, barW, h, color)
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" font-size="%d" fill="%s" text-anchor="middle">%d</text>`,
			cx, y-4, cfg.FontSize, cfg.Theme.Text, b.Value)
		fmt.Fprintf(&sb, `<text class="tick" x="%.1f" y="%d" font-size="%d" fill="%s" text-anchor="middle">%s</text>`,
			cx, py+ph+18, cfg.FontSize, cfg.Theme.Text, escapeXML(b.Label))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// Category is one bar inside every group of a grouped bar chart.
type Category struct {
	Name  string
	Color string
}

// Group is one cluster of bars, one value per category.
type Group struct {
	Label  string
	Values []int
}

// GroupedBarChart draws one cluster per group with a fixed colour per
// category and a legend naming the categories.
func GroupedBarChart(groups []Group, categories []Category, cfg Config) string {
	cfg = cfg.normalize()
	if len(groups) == 0 || len(categories) == 0 {
		return emptySVG(cfg, "Ei dataa")
	}

	hi := 0
	for _, g := range groups {
		for _, v := range g.Values {
			hi = max(hi, v)
		}
	}
	maxVal := niceMax(float64(hi))

	px, py, pw, ph := cfg.plotArea()
	slot := float64(pw) / float64(len(groups))
	groupW := slot * 0.75
	barW := groupW / float64(len(categories))

	var sb strings.Builder
	open(&sb, cfg)
	yGrid(&sb, cfg, 0, maxVal)
	axes(&sb, cfg)

	for gi, g := range groups {
		left := float64(px) + slot*float64(gi) + (slot-groupW)/2
		for ci, c := range categories {
			v := 0
			if ci < len(g.Values) {
				v = g.Values[ci]
			}
			h := float64(v) / maxVal * float64(ph)
			fmt.Fprintf(&sb, `<rect class="bar" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"><title>%s %s: %d</title></rect>`,
				left+barW*float64(ci), float64(py+ph)-h, barW*0.9, h, c.Color,
				escapeXML(g.Label), escapeXML(c.Name), v)
		}
		fmt.Fprintf(&sb, `<text class="tick" x="%.1f" y="%d" font-size="%d" fill="%s" text-anchor="middle">%s</text>`,
			left+groupW/2, py+ph+18, cfg.FontSize, cfg.Theme.Text, escapeXML(g.Label))
	}

	names := make([]string, len(categories))
	colors := make([]string, len(categories))
	for i, c := range categories {
		names[i], colors[i] = c.Name, c.Color
	}
	legend(&sb, cfg, names, colors)

	sb.WriteString("</svg>")
	return sb.String()
}

// ════════════════════════════════════════════════════════════════════
// SVG Helpers
// ════════════════════════════════════════════════════════════════════

func open(sb *strings.Builder, cfg Config) {
	fmt.Fprintf(sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height)
	fmt.Fprintf(sb, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`, cfg.Width, cfg.Height, cfg.Theme.Background)
	if cfg.Title != "" {
		fmt.Fprintf(sb, `<text x="%d" y="22" font-size="14" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
			cfg.Width/2, cfg.Theme.Text, escapeXML(cfg.Title))
	}
}

func axes(sb *strings.Builder, cfg Config) {
	px, py, pw, ph := cfg.plotArea()
	fmt.Fprintf(sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s"/>`, px, py, px, py+ph, cfg.Theme.Axis)
	fmt.Fprintf(sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s"/>`, px, py+ph, px+pw, py+ph, cfg.Theme.Axis)
	if cfg.YLabel != "" {
		fmt.Fprintf(sb, `<text x="14" y="%d" font-size="%d" fill="%s" text-anchor="middle" transform="rotate(-90,14,%d)">%s</text>`,
			py+ph/2, cfg.FontSize, cfg.Theme.Text, py+ph/2, escapeXML(cfg.YLabel))
	}
}

func yGrid(sb *strings.Builder, cfg Config, lo, hi float64) {
	px, py, pw, ph := cfg.plotArea()
	const lines = 5
	for i := 0; i <= lines; i++ {
		v := lo + (hi-lo)*float64(i)/lines
		y := py + ph - int(float64(ph)*float64(i)/lines)
		fmt.Fprintf(sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-dasharray="3,3"/>`,
			px, y, px+pw, y, cfg.Theme.Grid)
		fmt.Fprintf(sb, `<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="end">%.0f</text>`,
			px-6, y+4, cfg.FontSize, cfg.Theme.Text, v)
	}
}

func legend(sb *strings.Builder, cfg Config, names, colors []string) {
	px, py, pw, _ := cfg.plotArea()
	x := px + pw - 120
	for i, name := range names {
		y := py + 6 + i*16
		fmt.Fprintf(sb, `<rect x="%d" y="%d" width="14" height="4" fill="%s"/>`, x, y-2, colors[i])
		fmt.Fprintf(sb, `<text class="legend" x="%d" y="%d" font-size="10" fill="%s">%s</text>`,
			x+20, y+3, cfg.Theme.Text, escapeXML(name))
	}
}

// paddedRange widens [lo, hi] by 5% on each side.
func paddedRange(lo, hi float64) (float64, float64) {
	r := hi - lo
	if r < 1 {
		r = 1
	}
	return lo - r*0.05, hi + r*0.05
}

// niceMax rounds v up to a bar-chart axis maximum with headroom.
func niceMax(v float64) float64 {
	if v <= 0 {
		return 1
	}
	v *= 1.1
	step := math.Pow(10, math.Floor(math.Log10(v)))
	return math.Ceil(v/step) * step
}

func emptySVG(cfg Config, msg string) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"><rect width="%d" height="%d" fill="%s"/><text x="%d" y="%d" text-anchor="middle" fill="#999" font-size="14">%s</text></svg>`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height, cfg.Theme.Background, cfg.Width/2, cfg.Height/2, escapeXML(msg))
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}
