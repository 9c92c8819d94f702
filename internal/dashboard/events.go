package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/seenimoa/brandradar/internal/session"
)

// Page identifies one of the two dashboard pages.
type Page string

const (
	PageNews       Page = "news"
	PageComparison Page = "comparison"
)

// ParsePage maps a sidebar value to a page. Unknown values select the
// news page.
func ParsePage(s string) Page {
	if Page(strings.ToLower(strings.TrimSpace(s))) == PageComparison {
		return PageComparison
	}
	return PageNews
}

// Event types sent by the browser.
const (
	EventNavigate = "navigate"
	EventQuery    = "query"
	EventWindow   = "window"
	EventBrands   = "brands"
)

// Event is one discrete UI interaction.
type Event struct {
	Type   string   `json:"type"`
	Page   string   `json:"page,omitempty"`
	Query  string   `json:"query,omitempty"`
	Window string   `json:"window,omitempty"`
	Brands []string `json:"brands,omitempty"`
}

// ErrUnknownEvent is returned by Dispatch for an unrecognised event type.
var ErrUnknownEvent = errors.New("dashboard: unknown event")

// Inputs is the per-client UI state that is not kept in the session: the
// current page, the query text and the brand selection.
type Inputs struct {
	Page   Page
	Query  string
	Brands []string
}

// NewInputs returns the inputs of a freshly opened dashboard.
func (d *Dashboard) NewInputs(page Page) *Inputs {
	return &Inputs{
		Page:   page,
		Query:  d.cfg.DefaultQuery,
		Brands: d.SelectBrands(nil, false),
	}
}

// Dispatch applies ev to the inputs and the session. The caller redraws
// in.Page afterwards. The window event is the only one that touches the
// session, and it does so through Session.SetWindow.
func (d *Dashboard) Dispatch(sess *session.Session, in *Inputs, ev Event) error {
	switch ev.Type {
	case EventNavigate:
		in.Page = ParsePage(ev.Page)
	case EventQuery:
		in.Page = PageNews
		in.Query = ev.Query
	case EventWindow:
		w, err := session.ParseWindow(ev.Window)
		if err != nil {
			return err
		}
		if err := sess.SetWindow(w); err != nil {
			return err
		}
		in.Page = PageComparison
	case EventBrands:
		in.Page = PageComparison
		in.Brands = d.SelectBrands(ev.Brands, true)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
	return nil
}
