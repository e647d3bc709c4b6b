// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	Requests       *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec
	IndexEntries   prometheus.Gauge
}

// NewMetrics creates the server collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "apiref_http_requests_total",
			Help: "Number of requests served by the docs server",
		}, []string{"route", "code"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "apiref_render_duration_seconds",
			Help:    "Time spent rendering a documentation page on a cache miss",
			Buckets: prometheus.DefBuckets,
		}, []string{"page"}),
		IndexEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "apiref_index_entries",
			Help: "Number of (section, URI, method) entries in the last built index",
		}),
	}
}

// RegisterWith registers every collector with reg.
func (m *Metrics) RegisterWith(reg *prometheus.Registry) {
	reg.MustRegister(m.Requests)
	reg.MustRegister(m.RenderDuration)
	reg.MustRegister(m.IndexEntries)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(statusCode int) {
	sr.statusCode = statusCode
	sr.ResponseWriter.WriteHeader(statusCode)
}

// instrument counts requests per route pattern and logs each one.
func instrument(m *Metrics, logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			m.Requests.WithLabelValues(route, strconv.Itoa(rec.statusCode)).Inc()
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.statusCode,
				"duration", time.Since(start),
			)
		})
	}
}
