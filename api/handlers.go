package api

import (
	"encoding/json"
	"net/http"

	"github.com/seenimoa/brandradar/internal/config"
	"github.com/seenimoa/brandradar/internal/dashboard"
	"github.com/seenimoa/brandradar/internal/session"
)

// WindowRequest is the body for PUT /api/v1/session/window. Window takes
// the "3m|6m|12m" or "90|180|365" form; WindowDays the plain day count.
type WindowRequest struct {
	Window     string `json:"window,omitempty"`
	WindowDays int    `json:"window_days,omitempty"`
}

// SessionInfo describes the caller's session.
type SessionInfo struct {
	ID          string `json:"id"`
	WindowDays  int    `json:"window_days"`
	WindowLabel string `json:"window_label"`
}

func sessionInfo(sess *session.Session) SessionInfo {
	w := sess.Window()
	return SessionInfo{ID: sess.ID(), WindowDays: w.Days(), WindowLabel: w.Label()}
}

// handleNewsAPI returns the news view. A failed fetch is reported as 502
// with the view (including the simulated trend) still attached.
func (s *Server) handleNewsAPI(w http.ResponseWriter, r *http.Request) {
	in := s.inputsFromQuery(dashboard.PageNews, r.URL.Query())
	v := s.dash.News(r.Context(), in.Query)
	if v.Error != "" {
		s.writeJSON(w, http.StatusBadGateway, APIResponse{Success: false, Data: v, Error: v.Error})
		return
	}
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: v})
}

func (s *Server) handleComparisonAPI(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Load(w, r)
	in := s.inputsFromQuery(dashboard.PageComparison, r.URL.Query())
	v := s.dash.Comparison(r.Context(), sess, in.Brands)
	if v.Error != "" {
		s.writeJSON(w, http.StatusBadGateway, APIResponse{Success: false, Data: v, Error: v.Error})
		return
	}
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: v})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Load(w, r)
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: sessionInfo(sess)})
}

func (s *Server) handleSetWindow(w http.ResponseWriter, r *http.Request) {
	var req WindowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	raw := req.Window
	if raw == "" && req.WindowDays != 0 {
		raw = session.Window(req.WindowDays).Key()
	}

	sess := s.sessions.Load(w, r)
	in := s.dash.NewInputs(dashboard.PageComparison)
	if err := s.dash.Dispatch(sess, in, dashboard.Event{Type: dashboard.EventWindow, Window: raw}); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: sessionInfo(sess)})
}

// handleGetConfigKeys returns the status of the required API keys.
func (s *Server) handleGetConfigKeys(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    config.CheckAPIKeys(s.cfg),
	})
}
