// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

/*
Package middleware carries the HTTP infrastructure the reference router
factory (internal/chirouter) layers ahead of the gateway's own pipeline
checkpoints: request identification, Prometheus instrumentation, gzip
compression, and a sliding-window latency monitor.

All middleware here is chi-shaped, func(http.Handler) http.Handler, so
it slots directly into chi's Use chain next to go-chi/cors and
go-chi/httprate:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)
	r.Use(perf.Middleware)

RequestID runs first so every later log line, including one from a
reload racing a request, carries the request and correlation ids via
logging.Ctx.
PrometheusMetrics observes the final status code of everything below it,
method-guard 405s included. The PerformanceMonitor keeps a bounded ring
of recent latencies for the /debug/perf snapshot and warns on requests
slower than one second.

None of this package knows about lifecycle events or query plans; the
gateway-semantic checkpoints live in internal/pipeline.
*/
package middleware
