package dashboard

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"slices"

	"github.com/seenimoa/brandradar/internal/session"
)

// uiText exposes the message constants to the templates.
type uiText struct {
	AppTitle, MenuTitle, MenuNews, MenuComparison           string
	NewsTitle, NewsInputLabel, NewsTrendTitle, NewsReadMore string
	ComparisonTitle, ComparisonSelect, ComparisonApply      string
	PanelCounts, PanelTrends, PanelSentiment, SimulatedNote string
}

var texts = uiText{
	AppTitle: AppTitle, MenuTitle: MenuTitle, MenuNews: MenuNews, MenuComparison: MenuComparison,
	NewsTitle: NewsTitle, NewsInputLabel: NewsInputLabel, NewsTrendTitle: NewsTrendTitle, NewsReadMore: NewsReadMore,
	ComparisonTitle: ComparisonTitle, ComparisonSelect: ComparisonSelect, ComparisonApply: ComparisonApply,
	PanelCounts: PanelCounts, PanelTrends: PanelTrends, PanelSentiment: PanelSentiment, SimulatedNote: SimulatedNote,
}

type pageData struct {
	T          uiText
	Page       Page
	Fatal      string
	News       *NewsView
	Comparison *ComparisonView
}

func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"has": func(list []string, s string) bool { return slices.Contains(list, s) },
	}
	t := template.New("dashboard").Funcs(funcs)
	for _, src := range []string{layoutTemplate, fatalTemplate, newsTemplate, comparisonTemplate} {
		if _, err := t.Parse(src); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Render builds the page selected by in and writes it to w. With full set
// the whole HTML document is written, otherwise only the page body (the
// fragment pushed over the event channel).
func (d *Dashboard) Render(ctx context.Context, w io.Writer, sess *session.Session, in *Inputs, full bool) error {
	data := pageData{T: texts, Page: in.Page}
	switch in.Page {
	case PageComparison:
		data.Comparison = d.Comparison(ctx, sess, in.Brands)
	default:
		data.Page = PageNews
		data.News = d.News(ctx, in.Query)
	}
	return d.execute(w, data, full)
}

// RenderFatal writes a page that shows only msg.
func (d *Dashboard) RenderFatal(w io.Writer, page Page, msg string, full bool) error {
	return d.execute(w, pageData{T: texts, Page: page, Fatal: msg}, full)
}

func (d *Dashboard) execute(w io.Writer, data pageData, full bool) error {
	name := "body"
	if full {
		name = "layout"
	}
	if err := d.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", data.Page, err)
	}
	return nil
}
