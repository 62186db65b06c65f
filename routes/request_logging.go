/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/flamego/flamego"
	"github.com/flamego/session"

	"github.com/lablens/lablens/logging"
	"github.com/lablens/lablens/metrics"
)

var requestLogger = logging.Logger(logging.SourceWebRequest)

// RequestLogger logs request metadata and timing for each HTTP request and
// records it in the HTTP metrics.
func RequestLogger(c flamego.Context, s session.Session) {
	start := time.Now()

	c.Next()

	status := c.ResponseWriter().Status()
	if status == 0 {
		status = http.StatusOK
	}

	elapsed := time.Since(start)
	metrics.ObserveHTTPRequest(c.Request().Method, c.Request().URL.Path, status, elapsed)

	fields := []interface{}{
		"event", "request",
		"status", status,
		"duration_ms", elapsed.Milliseconds(),
	}
	fields = append(fields, baseRequestFields(c, s)...)

	requestLogger.Info("request", fields...)
}

func logRateLimited(c flamego.Context, ip string) {
	requestLogger.Warn("rate limited",
		"event", "rate_limited",
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"ip", ip,
	)
}

func baseRequestFields(c flamego.Context, s session.Session) []interface{} {
	fields := []interface{}{
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"ip", clientIP(c.Request().Request),
		"user_agent", c.Request().UserAgent(),
	}

	if s != nil {
		_, hasPanel := s.Get(sessionPanelKey).(string)
		fields = append(fields, "has_panel", hasPanel)
	}

	return fields
}

// clientIP prefers proxy headers. Only use it for limits behind a trusted proxy.
func clientIP(r *http.Request) string {
	forwardedFor := r.Header.Get("X-Forwarded-For")
	if forwardedFor != "" {
		if idx := strings.Index(forwardedFor, ","); idx != -1 {
			forwardedFor = forwardedFor[:idx]
		}

		if ip := strings.TrimSpace(forwardedFor); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	return remoteIP(r)
}

// remoteIP is the address of the directly connected peer.
func remoteIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
