// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package server serves the rendered API reference over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/api2spec/apiref/internal/aggregator"
	"github.com/api2spec/apiref/internal/logging"
	"github.com/api2spec/apiref/internal/openapi"
	"github.com/api2spec/apiref/internal/present"
	"github.com/api2spec/apiref/internal/sections"
	"github.com/api2spec/apiref/pkg/types"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
	defaultReadTimeout      = 10 * time.Second
	writeTimeout            = 30 * time.Second
)

// Page cache keys.
const (
	pageHTML     = "html"
	pageMarkdown = "markdown"
	pageIndex    = "index"
)

// Server renders documentation pages from a cached index.
type Server struct {
	addr        string
	readTimeout time.Duration
	cache       *aggregator.Cache
	registry    *sections.Registry
	options     present.Options
	log         *log.Logger
	metrics     *Metrics
	prom        *prometheus.Registry
	startTime   time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request and lifecycle logs.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		s.log = logger
	}
}

// WithReadTimeout sets the request read timeout.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.readTimeout = d
		}
	}
}

// New creates a server listening on addr.
func New(addr string, cache *aggregator.Cache, reg *sections.Registry, opts present.Options, options ...Option) *Server {
	s := &Server{
		addr:        addr,
		readTimeout: defaultReadTimeout,
		cache:       cache,
		registry:    reg,
		options:     opts,
		log:         logging.Discard(),
		metrics:     NewMetrics(),
		prom:        prometheus.NewRegistry(),
		startTime:   time.Now(),
	}
	for _, opt := range options {
		opt(s)
	}
	s.metrics.RegisterWith(s.prom)
	return s
}

// Metrics returns the server collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		instrument(s.metrics, s.log),
		middleware.Recoverer,
	)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs", http.StatusFound)
	})
	router.Get("/docs", s.page(pageHTML, "text/html; charset=utf-8", s.renderHTML))
	router.Get("/docs.md", s.page(pageMarkdown, "text/markdown; charset=utf-8", s.renderMarkdown))
	router.Get("/docs.json", s.page(pageIndex, "application/json", s.renderIndex))
	router.Get("/healthz", s.healthHandler)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.prom, promhttp.HandlerOpts{Registry: s.prom}))

	return router
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       s.readTimeout,
		ReadHeaderTimeout: s.readTimeout,
		WriteTimeout:      writeTimeout,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.log.Info("Shutting down docs server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error("Error shutting down docs server", "err", err)
		}
	}()

	s.log.Info("Serving API reference", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}

// page serves a cached body, rendering it on a miss.
func (s *Server) page(key, contentType string, render aggregator.RenderFunc) http.HandlerFunc {
	timed := func(idx types.Index) ([]byte, error) {
		start := time.Now()
		defer func() {
			s.metrics.RenderDuration.WithLabelValues(key).Observe(time.Since(start).Seconds())
		}()
		s.metrics.IndexEntries.Set(float64(idx.Len()))
		return render(idx)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		body, err := s.cache.Page(key, timed)
		if err != nil {
			s.log.Error("Failed to render page", "page", key, "err", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(body)
	}
}

func (s *Server) renderHTML(idx types.Index) ([]byte, error) {
	page, err := present.Build(idx, s.registry)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := present.HTML(&buf, page, s.options); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Server) renderMarkdown(idx types.Index) ([]byte, error) {
	page, err := present.Build(idx, s.registry)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := present.Markdown(&buf, page, s.options); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Server) renderIndex(idx types.Index) ([]byte, error) {
	var buf bytes.Buffer
	if err := openapi.NewWriter().WriteJSON(idx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// healthHandler reports liveness and whether the index currently builds.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := map[string]any{
		"status":         "ok",
		"uptime_seconds": time.Since(s.startTime).Seconds(),
	}
	status := http.StatusOK

	idx, err := s.cache.Index()
	if err != nil {
		health["status"] = "error"
		health["error"] = err.Error()
		status = http.StatusServiceUnavailable
	} else {
		health["entries"] = idx.Len()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(health); err != nil {
		s.log.Error("Failed to encode health response", "err", err)
	}
}
