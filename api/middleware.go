package api

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/seenimoa/brandradar/internal/config"
	"github.com/seenimoa/brandradar/internal/dashboard"
)

// requestLogger logs one line per request through logrus.
func requestLogger(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			log.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start).String(),
				"request_id": middleware.GetReqID(r.Context()),
			}).Info("request")
		})
	}
}

// keyGuard stops every request with the fatal missing-keys error while a
// required secret is absent. The check runs per request.
func (s *Server) keyGuard(jsonAPI bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := s.cfg.RequireKeys()
			if err == nil {
				next.ServeHTTP(w, r)
				return
			}

			var mk *config.MissingKeysError
			if !errors.As(err, &mk) {
				s.log.WithError(err).Error("key check failed")
			}
			if jsonAPI {
				s.writeError(w, http.StatusServiceUnavailable, err.Error())
				return
			}

			var buf bytes.Buffer
			page := dashboard.PageNews
			if strings.HasPrefix(r.URL.Path, "/comparison") {
				page = dashboard.PageComparison
			}
			if rerr := s.dash.RenderFatal(&buf, page, err.Error(), true); rerr != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write(buf.Bytes())
		})
	}
}
