// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPerformanceMonitorRecordsPerRoute(t *testing.T) {
	pm := NewPerformanceMonitor(16)
	handler := pm.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i := 0; i < 3; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/graphql", nil))
	}
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	stats := pm.Stats()
	if len(stats) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(stats))
	}
	// Busiest route first.
	if stats[0].Route != "POST /graphql" || stats[0].RequestCount != 3 {
		t.Errorf("unexpected top route: %+v", stats[0])
	}
	if stats[1].Route != "GET /healthz" || stats[1].RequestCount != 1 {
		t.Errorf("unexpected second route: %+v", stats[1])
	}
}

func TestPerformanceMonitorWindowBounded(t *testing.T) {
	pm := NewPerformanceMonitor(4)
	handler := pm.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i := 0; i < 10; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/graphql", nil))
	}

	stats := pm.Stats()
	if len(stats) != 1 {
		t.Fatalf("expected 1 route, got %d", len(stats))
	}
	if stats[0].RequestCount != 4 {
		t.Errorf("window should cap at 4 samples, got %d", stats[0].RequestCount)
	}
}

func TestPerformanceMonitorEmptyStats(t *testing.T) {
	if stats := NewPerformanceMonitor(8).Stats(); len(stats) != 0 {
		t.Errorf("expected no stats before any request, got %+v", stats)
	}
}

func TestPercentile(t *testing.T) {
	sorted := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	cases := []struct {
		p    float64
		want int64
	}{
		{0.50, 5},
		{0.95, 9},
		{0.99, 9},
		{1.0, 10},
	}
	for _, tc := range cases {
		if got := percentile(sorted, tc.p); got != tc.want {
			t.Errorf("percentile(%.2f) = %d, want %d", tc.p, got, tc.want)
		}
	}
	if got := percentile(nil, 0.5); got != 0 {
		t.Errorf("empty slice should yield 0, got %d", got)
	}
}
