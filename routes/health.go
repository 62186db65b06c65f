/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/flamego/flamego"

	"github.com/lablens/lablens/db"
	"github.com/lablens/lablens/metrics"
)

var healthPingFn = func(ctx context.Context) error {
	if !db.Enabled() {
		return nil
	}

	return db.GetPool().Ping(ctx)
}

// Healthz reports liveness, including the event store when enabled
func Healthz(c flamego.Context) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := healthPingFn(ctx); err != nil {
		webLogger.Warn("Health check failed", "error", err)
		writeJSON(c, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": "error"})

		return
	}

	writeJSON(c, http.StatusOK, map[string]string{"status": "ok"})
}

// Metrics serves the Prometheus registry
func Metrics(c flamego.Context) {
	metrics.Handler().ServeHTTP(c.ResponseWriter(), c.Request().Request)
}
