// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/gatewaycore/internal/metrics"
)

// PrometheusMetrics records request count and latency for every request
// reaching the pipeline, labelled by method and final status code. It
// sits above the method guard, so 405 rejections are counted like any
// other response.
func PrometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		metrics.RecordHTTPRequest(r.Method, strconv.Itoa(sw.status), time.Since(start))
	})
}

// statusWriter captures the status code the downstream handler settles
// on; shared by the metrics and performance middleware in this package.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}
