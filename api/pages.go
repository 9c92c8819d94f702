package api

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/seenimoa/brandradar/internal/dashboard"
	"github.com/seenimoa/brandradar/internal/session"
)

// inputsFromQuery builds the page inputs from URL parameters: q for the
// news query, brands (repeated or comma separated) and sel for the brand
// selection. A present but empty q or sel means "nothing entered".
func (s *Server) inputsFromQuery(page dashboard.Page, q url.Values) *dashboard.Inputs {
	in := s.dash.NewInputs(page)
	if q.Has("q") {
		in.Query = q.Get("q")
	}
	if q.Has("brands") || q.Has("sel") {
		in.Brands = s.dash.SelectBrands(q["brands"], true)
	}
	return in
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, sess *session.Session, in *dashboard.Inputs) {
	var buf bytes.Buffer
	if err := s.dash.Render(r.Context(), &buf, sess, in, true); err != nil {
		s.log.WithError(err).Error("render failed")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleNewsPage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Load(w, r)
	s.renderPage(w, r, sess, s.inputsFromQuery(dashboard.PageNews, r.URL.Query()))
}

func (s *Server) handleComparisonPage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Load(w, r)
	s.renderPage(w, r, sess, s.inputsFromQuery(dashboard.PageComparison, r.URL.Query()))
}

// handleWindowForm is the non-script fallback for the window buttons: it
// applies the window event and redirects back to the comparison page,
// keeping the brand selection.
func (s *Server) handleWindowForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	sess := s.sessions.Load(w, r)
	in := s.inputsFromQuery(dashboard.PageComparison, r.PostForm)

	ev := dashboard.Event{Type: dashboard.EventWindow, Window: r.PostForm.Get("window")}
	if err := s.dash.Dispatch(sess, in, ev); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	back := url.Values{"sel": {"1"}}
	for _, b := range in.Brands {
		back.Add("brands", b)
	}
	http.Redirect(w, r, "/comparison?"+back.Encode(), http.StatusSeeOther)
}
