// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flamego/flamego"
)

func TestIPRateLimiterAllowsBurstPerIP(t *testing.T) {
	t.Parallel()

	l := NewIPRateLimiter(1, 2)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	if !l.Allow("203.0.113.1") || !l.Allow("203.0.113.1") {
		t.Fatal("expected burst to be allowed")
	}

	if l.Allow("203.0.113.1") {
		t.Fatal("expected third request to be limited")
	}

	if !l.Allow("203.0.113.2") {
		t.Fatal("expected a different IP to have its own budget")
	}

	now = now.Add(time.Minute)
	if !l.Allow("203.0.113.1") {
		t.Fatal("expected a token after a minute")
	}
}

func TestIPRateLimiterEvictsIdle(t *testing.T) {
	t.Parallel()

	l := NewIPRateLimiter(60, 1)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("203.0.113.1")

	now = now.Add(limiterIdleTTL + time.Second)
	l.Allow("203.0.113.2")

	if _, ok := l.limiters["203.0.113.1"]; ok {
		t.Fatal("expected idle limiter to be evicted")
	}
}

func TestIPRateLimiterHandler(t *testing.T) {
	t.Parallel()

	l := NewIPRateLimiter(1, 1)

	f := flamego.New()
	f.Use(l.Handler())
	f.Post("/analyze", func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})

	serve := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
		req.RemoteAddr = "198.51.100.7:5000"

		rec := httptest.NewRecorder()
		f.ServeHTTP(rec, req)

		return rec
	}

	if rec := serve(); rec.Code != http.StatusNoContent {
		t.Fatalf("expected first request through, got %d", rec.Code)
	}

	rec := serve()
	if rec.Code != http.StatusTooManyRequests || rec.Header().Get("Retry-After") != "60" {
		t.Fatalf("expected 429 with Retry-After, got %d %q", rec.Code, rec.Header().Get("Retry-After"))
	}
}

func TestIPRateLimiterIgnoresForwardedHeadersByDefault(t *testing.T) {
	t.Parallel()

	l := NewIPRateLimiter(1, 2)

	f := flamego.New()
	f.Use(l.Handler())
	f.Post("/messages/staff", func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})

	limited := 0
	for n := 0; n < 5; n++ {
		req := httptest.NewRequest(http.MethodPost, "/messages/staff", nil)
		req.RemoteAddr = "198.51.100.7:5000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", n))
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.1.0.%d", n))

		rec := httptest.NewRecorder()
		f.ServeHTTP(rec, req)

		if rec.Code == http.StatusTooManyRequests {
			limited++
		}
	}

	if limited != 3 {
		t.Fatalf("expected 3 of 5 requests limited regardless of headers, got %d", limited)
	}
}

func TestIPRateLimiterTrustProxyUsesForwardedFor(t *testing.T) {
	t.Parallel()

	l := NewIPRateLimiter(1, 1)
	l.TrustProxy = true

	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	req.RemoteAddr = "10.0.0.1:5000"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	if got := l.key(req); got != "203.0.113.9" {
		t.Fatalf("expected forwarded client, got %q", got)
	}

	l.TrustProxy = false
	if got := l.key(req); got != "10.0.0.1" {
		t.Fatalf("expected peer address, got %q", got)
	}
}
