// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/AccelByte/extend-visitor-achievements/pkg/handler"
	"github.com/AccelByte/extend-visitor-achievements/pkg/ledger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// HTTPServer serves the achievement API.
type HTTPServer struct {
	server  *http.Server
	port    int
	timeout time.Duration
	api     *handler.Achievements
	checker *ledger.HealthChecker
}

// NewHTTPServer creates a new API server instance.
func NewHTTPServer(port int, timeout time.Duration, api *handler.Achievements, checker *ledger.HealthChecker) *HTTPServer {
	return &HTTPServer{
		port:    port,
		timeout: timeout,
		api:     api,
		checker: checker,
	}
}

// Setup builds the router.
func (s *HTTPServer) Setup() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return nil
}

// Router returns the API routes behind the standard middleware stack.
func (s *HTTPServer) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}

	r.Get("/healthz", s.healthz)
	s.api.Routes(r)
	return r
}

func (s *HTTPServer) healthz(w http.ResponseWriter, r *http.Request) {
	status, body := http.StatusOK, map[string]string{"status": "ok"}
	if err := s.checker.Check(r.Context()); err != nil {
		status, body = http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// requestLogger logs each request through logrus.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logrus.WithFields(logrus.Fields{
			"requestID": middleware.GetReqID(r.Context()),
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    ww.Status(),
			"duration":  time.Since(start).String(),
		}).Debug("http request")
	})
}

// Start begins serving the API.
func (s *HTTPServer) Start(ctx context.Context) error {
	go func() {
		logrus.Infof("HTTP API listening on port %d", s.port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP API server failed: %v", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the API server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down HTTP API server...")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("HTTP API server stopped")
	return nil
}
