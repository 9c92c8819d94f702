package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/seenimoa/brandradar/internal/dashboard"
	"github.com/seenimoa/brandradar/internal/session"
	"github.com/seenimoa/brandradar/internal/trend"
	"github.com/seenimoa/brandradar/pkg/models"
)

func TestWriteNews(t *testing.T) {
	v := &dashboard.NewsView{
		Query:    "Valio",
		Searched: true,
		Heading:  "Viimeisimmät uutiset aiheesta: Valio",
		Provider: "newsapi",
		Articles: []models.ScoredArticle{{
			Article: models.Article{Title: "Valio kasvaa", Description: "Hyvä uutinen", URL: "https://example.com/a"},
			Label:   "Positiivinen",
		}},
		Trend: []trend.Point{{Date: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), Value: 42}},
	}

	var buf bytes.Buffer
	if err := writeNews(&buf, v); err != nil {
		t.Fatalf("writeNews: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"# Viimeisimmät uutiset aiheesta: Valio",
		"**Valio kasvaa**",
		"*Hyvä uutinen*",
		"[" + dashboard.NewsReadMore + "](https://example.com/a)",
		"2026-10-19",
		"42",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteComparisonNoSelection(t *testing.T) {
	var buf bytes.Buffer
	v := &dashboard.ComparisonView{Caption: "Aikaväli"}
	if err := writeComparison(&buf, v); err != nil {
		t.Fatalf("writeComparison: %v", err)
	}
	if !strings.Contains(buf.String(), dashboard.ComparisonSelect) {
		t.Errorf("expected selection hint, got:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), dashboard.PanelCounts) {
		t.Error("no panels expected without a selection")
	}
}

func TestWriteComparisonTables(t *testing.T) {
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	data, err := trend.NewSyntheticSource(trend.NewGenerator(7)).Compare(t.Context(), []string{"Valio", "Fazer"}, 90, now)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writeComparison(&buf, &dashboard.ComparisonView{Caption: "Aikaväli", Data: data}); err != nil {
		t.Fatalf("writeComparison: %v", err)
	}
	out := buf.String()
	for _, want := range []string{dashboard.PanelCounts, dashboard.PanelTrends, dashboard.PanelSentiment, dashboard.SimulatedNote, "Valio", "Fazer"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestSentimentHeader(t *testing.T) {
	h := sentimentHeader()
	if len(h) != 4 || h[0] != "Brändi" {
		t.Errorf("sentimentHeader() = %v", h)
	}
}

func TestCompareWindowDefaultsToSessionDefault(t *testing.T) {
	def := compareCmd.Flags().Lookup("window").DefValue
	w, err := session.ParseWindow(def)
	if err != nil {
		t.Fatalf("default %q does not parse: %v", def, err)
	}
	if w != session.DefaultWindow || w.Days() != 180 {
		t.Errorf("--window default = %q (%d days), want 180", def, w.Days())
	}
}
