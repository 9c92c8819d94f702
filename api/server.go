// Package api provides the HTTP server for BrandRadar.
//
// It serves the two dashboard pages, a JSON API mirroring them, and a
// WebSocket event channel that pushes re-rendered pages to the browser.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/seenimoa/brandradar/internal/config"
	"github.com/seenimoa/brandradar/internal/dashboard"
	"github.com/seenimoa/brandradar/internal/session"
	"github.com/seenimoa/brandradar/web"
)

// sessionCleanupInterval is how often idle sessions are evicted.
const sessionCleanupInterval = 10 * time.Minute

// Server is the HTTP server.
type Server struct {
	router   chi.Router
	cfg      *config.Config
	dash     *dashboard.Dashboard
	sessions *session.Manager
	wsHub    *WSHub
	log      *logrus.Logger
	version  string
}

// Options overrides collaborators NewServer would otherwise build.
type Options struct {
	Dashboard *dashboard.Dashboard
	Sessions  *session.Manager
	Logger    *logrus.Logger
	Version   string
}

// NewServer creates a configured server with all routes and middleware.
func NewServer(cfg *config.Config, opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.Dashboard == nil {
		d, err := dashboard.New(cfg, dashboard.Options{Logger: opts.Logger})
		if err != nil {
			return nil, fmt.Errorf("dashboard setup failed: %w", err)
		}
		opts.Dashboard = d
	}
	if opts.Sessions == nil {
		def, err := session.ParseWindow(fmt.Sprint(cfg.Dashboard.DefaultWindowDays))
		if err != nil {
			def = session.DefaultWindow
		}
		opts.Sessions = session.NewManager(session.NewMemoryStore(cfg.Session.TTL),
			cfg.Session.CookieName, cfg.Session.TTL, def)
	}

	srv := &Server{
		cfg:      cfg,
		dash:     opts.Dashboard,
		sessions: opts.Sessions,
		wsHub:    NewWSHub(),
		log:      opts.Logger,
		version:  opts.Version,
	}
	srv.router = srv.buildRouter()
	go srv.wsHub.Run()
	return srv, nil
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server and blocks until SIGINT/SIGTERM,
// then shuts down gracefully.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go s.sessions.RunCleanup(ctx, sessionCleanupInterval, func(n int) {
		s.log.WithField("evicted", n).Debug("idle sessions evicted")
	})

	if err := s.cfg.RequireKeys(); err != nil {
		s.log.WithError(err).Error("API keys missing, every page will show the error")
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("dashboard listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-done:
	}
	s.log.Info("shutting down server")
	s.wsHub.Broadcast(WSMessage{Type: "shutdown"})

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	return httpSrv.Shutdown(shutdownCtx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(web.StaticFS())))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/news", http.StatusFound)
	})

	// Pages and the event channel
	r.Group(func(r chi.Router) {
		r.Use(s.keyGuard(false))
		r.Get("/news", s.handleNewsPage)
		r.Get("/comparison", s.handleComparisonPage)
		r.Post("/comparison/window", s.handleWindowForm)
		r.Get("/ws", s.handleWebSocket)
	})

	// JSON API
	r.Route("/api/v1", func(r chi.Router) {
		origins := []string{"*"}
		if len(s.cfg.API.CORSOrigins) > 0 {
			origins = s.cfg.API.CORSOrigins
		}
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{"GET", "PUT", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))

		r.Get("/health", s.handleHealth)

		r.Group(func(r chi.Router) {
			r.Use(s.keyGuard(true))
			r.Get("/news", s.handleNewsAPI)
			r.Get("/comparison", s.handleComparisonAPI)
			r.Get("/session", s.handleGetSession)
			r.Put("/session/window", s.handleSetWindow)
			r.Get("/config/keys", s.handleGetConfigKeys)
		})
	})

	return r
}

// ============================================================
// Response helpers
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Warn("failed to write JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":     "ok",
			"version":    s.version,
			"keys_ok":    s.cfg.RequireKeys() == nil,
			"provider":   s.cfg.News.Provider,
			"ws_clients": s.wsHub.ClientCount(),
		},
	})
}
