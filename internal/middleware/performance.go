// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package middleware

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/gatewaycore/internal/logging"
)

// slowRequestThreshold is the latency above which a request is logged at
// warn level the moment it completes.
const slowRequestThreshold = time.Second

// sample is one completed request's latency observation.
type sample struct {
	route      string
	durationMS int64
}

// PerformanceMonitor keeps a bounded sliding window of request latencies
// and serves percentile snapshots over them. Prometheus histograms cover
// long-term trends; this window answers "what do the last N requests
// look like right now" without a scrape.
type PerformanceMonitor struct {
	mu      sync.Mutex
	window  []sample
	next    int
	filled  bool
	maxSize int
}

// RouteStats aggregates the window's observations for one method+path.
type RouteStats struct {
	Route        string  `json:"route"`
	RequestCount int     `json:"request_count"`
	AvgMS        float64 `json:"avg_ms"`
	P50MS        int64   `json:"p50_ms"`
	P95MS        int64   `json:"p95_ms"`
	P99MS        int64   `json:"p99_ms"`
	MaxMS        int64   `json:"max_ms"`
}

// NewPerformanceMonitor bounds the window to maxSamples observations;
// older ones are overwritten ring-buffer style.
func NewPerformanceMonitor(maxSamples int) *PerformanceMonitor {
	if maxSamples <= 0 {
		maxSamples = 1024
	}
	return &PerformanceMonitor{
		window:  make([]sample, maxSamples),
		maxSize: maxSamples,
	}
}

// Middleware observes every request's latency, recording it into the
// window and logging requests that exceed slowRequestThreshold.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		elapsed := time.Since(start)
		pm.record(r.Method+" "+r.URL.Path, elapsed.Milliseconds())

		if elapsed > slowRequestThreshold {
			logging.Ctx(r.Context()).Warn().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("elapsed", elapsed).
				Int("status", sw.status).
				Msg("slow request")
		}
	})
}

func (pm *PerformanceMonitor) record(route string, durationMS int64) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.window[pm.next] = sample{route: route, durationMS: durationMS}
	pm.next++
	if pm.next == pm.maxSize {
		pm.next = 0
		pm.filled = true
	}
}

// Stats snapshots the current window as per-route percentile aggregates,
// busiest route first.
func (pm *PerformanceMonitor) Stats() []RouteStats {
	pm.mu.Lock()
	n := pm.next
	if pm.filled {
		n = pm.maxSize
	}
	byRoute := make(map[string][]int64)
	for _, s := range pm.window[:n] {
		byRoute[s.route] = append(byRoute[s.route], s.durationMS)
	}
	pm.mu.Unlock()

	stats := make([]RouteStats, 0, len(byRoute))
	for route, durations := range byRoute {
		sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
		var sum int64
		for _, d := range durations {
			sum += d
		}
		stats = append(stats, RouteStats{
			Route:        route,
			RequestCount: len(durations),
			AvgMS:        float64(sum) / float64(len(durations)),
			P50MS:        percentile(durations, 0.50),
			P95MS:        percentile(durations, 0.95),
			P99MS:        percentile(durations, 0.99),
			MaxMS:        durations[len(durations)-1],
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].RequestCount > stats[j].RequestCount })
	return stats
}

// percentile reads the p-th percentile from an already-sorted slice.
func percentile(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(float64(len(sorted)-1)*p)]
}
