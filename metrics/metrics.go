/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lablens_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lablens_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path"},
	)

	// Analysis metrics
	analysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lablens_analyses_total",
			Help: "Total number of lab document analyses by outcome",
		},
		[]string{"provider", "source", "reason"},
	)

	messagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lablens_messages_total",
			Help: "Total number of generated patient and staff messages by outcome",
		},
		[]string{"kind", "provider", "source", "reason"},
	)

	llmRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lablens_llm_request_duration_seconds",
			Help:    "LLM provider request duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"provider", "operation"},
	)
)

// knownPaths bounds the path label to the registered routes.
var knownPaths = map[string]bool{
	"/":                 true,
	"/analyze":          true,
	"/results":          true,
	"/results/clear":    true,
	"/messages/patient": true,
	"/messages/staff":   true,
	"/settings":         true,
	"/history":          true,
	"/api/models":       true,
	"/api/panel":        true,
	"/healthz":          true,
	"/metrics":          true,
	"/style.css":        true,
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	path = normalizePath(path)
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func normalizePath(path string) string {
	if knownPaths[path] {
		return path
	}

	return "other"
}

// RecordAnalysis counts an analysis outcome.
func RecordAnalysis(provider, source, reason string) {
	analysesTotal.WithLabelValues(provider, source, reason).Inc()
}

// RecordMessage counts a message generation outcome.
func RecordMessage(kind, provider, source, reason string) {
	messagesTotal.WithLabelValues(kind, provider, source, reason).Inc()
}

// ObserveLLMRequest records the latency of one provider call.
func ObserveLLMRequest(provider, operation string, duration time.Duration) {
	llmRequestDuration.WithLabelValues(provider, operation).Observe(duration.Seconds())
}
