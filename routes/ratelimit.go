/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"
	"sync"
	"time"

	"github.com/flamego/flamego"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter limits requests per client IP. Clients are keyed by the peer
// address unless TrustProxy is set, in which case X-Forwarded-For and
// X-Real-IP are honoured.
type IPRateLimiter struct {
	TrustProxy bool

	mu       sync.Mutex
	limiters map[string]*ipLimiter
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

// NewIPRateLimiter allows perMinute requests per IP with the given burst.
func NewIPRateLimiter(perMinute float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: make(map[string]*ipLimiter),
		rate:     rate.Limit(perMinute / 60),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow reports whether a request from ip may proceed.
func (i *IPRateLimiter) Allow(ip string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	i.evictIdle(now)

	entry, ok := i.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(i.rate, i.burst)}
		i.limiters[ip] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

func (i *IPRateLimiter) evictIdle(now time.Time) {
	for ip, entry := range i.limiters {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(i.limiters, ip)
		}
	}
}

func (i *IPRateLimiter) key(r *http.Request) string {
	if i.TrustProxy {
		return clientIP(r)
	}

	return remoteIP(r)
}

// Handler returns flamego middleware that rejects requests over the limit.
func (i *IPRateLimiter) Handler() flamego.Handler {
	return func(c flamego.Context) {
		ip := i.key(c.Request().Request)
		if !i.Allow(ip) {
			logRateLimited(c, ip)
			c.ResponseWriter().Header().Set("Retry-After", "60")
			http.Error(c.ResponseWriter(), "Too many requests", http.StatusTooManyRequests)
			return
		}

		c.Next()
	}
}
