// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterCache is a generic rate limiter cache with double-check locking.
type limiterCache[K comparable] struct {
	limiters map[K]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

// newLimiterCache creates a new limiter cache.
func newLimiterCache[K comparable](rps float64, burst int) *limiterCache[K] {
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

// get returns the rate limiter for a specific key, creating one if needed.
func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()

	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// clearIfExceeds clears all entries if the cache exceeds maxSize.
// Returns true if the cache was cleared.
func (lc *limiterCache[K]) clearIfExceeds(maxSize int) bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if len(lc.limiters) > maxSize {
		lc.limiters = make(map[K]*rate.Limiter)
		return true
	}
	return false
}

// maxLimiterEntries caps the per-IP limiter map so a scan across many
// source addresses cannot grow it without bound.
const maxLimiterEntries = 10000

// LoginRateLimit creates middleware that rate limits requests per client
// IP. Intended for the login endpoint where credential stuffing is the
// concern. rps is requests per second, burst the maximum burst size.
func LoginRateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		rps = 0.5
	}
	if burst <= 0 {
		burst = 5
	}
	cache := newLimiterCache[string](rps, burst)

	go func() {
		for range time.Tick(time.Hour) {
			cache.clearIfExceeds(maxLimiterEntries)
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cache.get(clientIP(r)).Allow() {
				WriteAPIError(w, http.StatusTooManyRequests, "rate_limited",
					"too many login attempts, try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the client address, preferring X-Forwarded-For when a
// reverse proxy sits in front.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
