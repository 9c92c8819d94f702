package chart

import (
	"strings"
	"testing"
	"time"
)

// ════════════════════════════════════════════════════════════════════
// Test Helpers
// ════════════════════════════════════════════════════════════════════

func weeklyDates(n int) []time.Time {
	end := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = end.AddDate(0, 0, -7*(n-1-i))
	}
	return out
}

func assertSVG(t *testing.T, svg string) {
	t.Helper()
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not an SVG document: %.80s", svg)
	}
}

// ════════════════════════════════════════════════════════════════════
// Line Chart
// ════════════════════════════════════════════════════════════════════

func TestLineChartSingleSeries(t *testing.T) {
	dates := weeklyDates(26)
	values := make([]int, 26)
	for i := range values {
		values[i] = 20 + i*3
	}
	svg := LineChart([]Series{{Values: values}}, dates, DefaultConfig().WithTitle("Hakutrendi"))
	assertSVG(t, svg)

	if strings.Count(svg, `class="series"`) != 1 {
		t.Error("expected one series path")
	}
	if !strings.Contains(svg, "Oct 26") {
		t.Error("last tick should be labelled Oct 26")
	}
	if !strings.Contains(svg, "Hakutrendi") {
		t.Error("missing title")
	}
	if strings.Contains(svg, `class="legend"`) {
		t.Error("unnamed single series should have no legend")
	}
	if !strings.Contains(svg, Light.Background) {
		t.Error("default theme should be light")
	}
}

func TestLineChartLegend(t *testing.T) {
	dates := weeklyDates(13)
	series := []Series{
		{Name: "Valio", Values: make([]int, 13)},
		{Name: "Fazer & co", Values: make([]int, 13)},
	}
	svg := LineChart(series, dates, DefaultConfig().WithTheme(Dark))
	assertSVG(t, svg)

	if strings.Count(svg, `class="legend"`) != 2 {
		t.Error("expected one legend entry per series")
	}
	if !strings.Contains(svg, "Fazer &amp; co") {
		t.Error("legend text should be escaped")
	}
	if !strings.Contains(svg, `fill="#000000"`) {
		t.Error("dark theme background missing")
	}
}

func TestLineChartPointMarkers(t *testing.T) {
	dates := weeklyDates(13)
	series := []Series{
		{Name: "Valio", Values: make([]int, 13), Color: "#123456"},
		{Name: "Fazer", Values: make([]int, 13)},
	}
	svg := LineChart(series, dates, DefaultConfig())
	if got := strings.Count(svg, `class="marker"`); got != 26 {
		t.Errorf("markers = %d, want one per point (26)", got)
	}
	if !strings.Contains(svg, `<circle class="marker" cx=`) || !strings.Contains(svg, `r="3" fill="#123456"`) {
		t.Error("markers should use the series colour")
	}

	single := LineChart([]Series{{Values: []int{42}}}, weeklyDates(1), DefaultConfig())
	if strings.Count(single, `class="marker"`) != 1 || strings.Contains(single, `class="series"`) {
		t.Error("a single point renders as one marker and no path")
	}
}

func TestLineChartEmpty(t *testing.T) {
	if svg := LineChart(nil, weeklyDates(3), DefaultConfig()); !strings.Contains(svg, "Ei dataa") {
		t.Error("no series should render placeholder")
	}
	if svg := LineChart([]Series{{Values: []int{1}}}, nil, DefaultConfig()); !strings.Contains(svg, "Ei dataa") {
		t.Error("no dates should render placeholder")
	}
}

// ════════════════════════════════════════════════════════════════════
// Bar Charts
// ════════════════════════════════════════════════════════════════════

func TestBarChart(t *testing.T) {
	svg := BarChart([]Bar{{Label: "Valio", Value: 12}, {Label: "Arla", Value: 7}}, DefaultConfig())
	assertSVG(t, svg)
	if strings.Count(svg, `class="bar"`) != 2 {
		t.Error("expected two bars")
	}
	for _, want := range []string{"Valio", "Arla", ">12<", ">7<"} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestGroupedBarChart(t *testing.T) {
	cats := []Category{
		{Name: "Positiivinen", Color: "#2ca02c"},
		{Name: "Neutraali", Color: "#7f7f7f"},
		{Name: "Negatiivinen", Color: "#d62728"},
	}
	groups := []Group{
		{Label: "Valio", Values: []int{3, 1, 5}},
		{Label: "Fazer", Values: []int{2, 4}},
	}
	svg := GroupedBarChart(groups, cats, DefaultConfig().WithTheme(Dark))
	assertSVG(t, svg)

	if strings.Count(svg, `class="bar"`) != 6 {
		t.Errorf("expected 6 bars, got %d", strings.Count(svg, `class="bar"`))
	}
	for _, c := range cats {
		if strings.Count(svg, `fill="`+c.Color+`"`) < 3 {
			t.Errorf("category %s should colour both bars and legend", c.Name)
		}
	}
	if !strings.Contains(svg, "Fazer Negatiivinen: 0") {
		t.Error("missing value should render as 0")
	}
}

func TestBarChartsEmpty(t *testing.T) {
	if !strings.Contains(BarChart(nil, DefaultConfig()), "Ei dataa") {
		t.Error("BarChart placeholder missing")
	}
	if !strings.Contains(GroupedBarChart(nil, []Category{{Name: "x"}}, DefaultConfig()), "Ei dataa") {
		t.Error("GroupedBarChart placeholder missing")
	}
}

func TestNiceMax(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 1},
		{5, 6},
		{20, 30},
		{100, 200},
	}
	for _, tt := range tests {
		if got := niceMax(tt.in); got != tt.want {
			t.Errorf("niceMax(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConfigNormalize(t *testing.T) {
	c := Config{Title: "x"}.normalize()
	if c.Width != 800 || c.Height != 360 || c.Theme.Background != Light.Background {
		t.Errorf("normalize did not fill defaults: %+v", c)
	}
	if c.Title != "x" {
		t.Error("title lost")
	}
}
