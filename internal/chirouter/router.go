// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package chirouter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/gatewaycore/internal/lifecycle"
	"github.com/tomtom215/gatewaycore/internal/middleware"
	"github.com/tomtom215/gatewaycore/internal/pipeline"
)

// helloContext is the value the future-with-context round trip carries:
// the inbound X-Hello request header, attached to the response only once
// the downstream handler is about to write it.
type helloContext struct {
	value string
}

const helloHeader = "X-Hello"

// Router is the reference RouterServiceFactory: it builds a chi.Mux
// wiring internal/middleware's HTTP infrastructure ahead of
// internal/pipeline's method-guard and future-with-context
// checkpoints, in front of a minimal stub GraphQL-over-HTTP executor.
type Router struct {
	perf *middleware.PerformanceMonitor
}

// NewRouter constructs a Router. perfMonMaxMetrics bounds the sliding
// window of per-request metrics retained for percentile reporting,
// mirroring middleware.NewPerformanceMonitor's own parameter.
func NewRouter(perfMonMaxMetrics int) *Router {
	return &Router{perf: middleware.NewPerformanceMonitor(perfMonMaxMetrics)}
}

var _ lifecycle.RouterServiceFactory = (*Router)(nil)

// NewRouter implements lifecycle.RouterServiceFactory. previous is the
// pipeline the caller is replacing, if any; this stub executor holds no
// resources tied to a specific schema generation beyond the schema value
// itself, so a fresh pipeline is always safe to hot-swap in, and
// hotSwappable is unconditionally true once construction succeeds.
func (rt *Router) NewRouter(ctx context.Context, cfg lifecycle.Configuration, schema lifecycle.Schema, previous http.Handler) (http.Handler, bool, error) {
	routerCfg, ok := cfg.(*Config)
	if !ok {
		return nil, false, fmt.Errorf("chirouter: NewRouter requires *chirouter.Config, got %T", cfg)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)
	r.Use(rt.perf.Middleware)
	r.Use(securityHeaders)
	r.Use(corsMiddleware(routerCfg))
	r.Use(rateLimitMiddleware(routerCfg))

	hello := pipeline.MapFutureWithContext(extractHello, wrapHello)

	// request-ID (global, above) -> future-with-context (hello) -> method
	// guard -> stub executor. attachQueryPlan sits ahead of hello since
	// the method guard depends on a plan already being in context by the
	// time it runs.
	r.Handle("/graphql", attachQueryPlan(hello(pipeline.MethodGuard(graphqlHandler(schema)))))
	r.Get("/healthz", healthHandler(schema))
	r.Get("/debug/perf", perfHandler(rt.perf))
	r.Handle("/metrics", promhttp.Handler())

	return r, true, nil
}

// extractHello is the Extractor half of the "hello" header round trip:
// it runs before the stub executor, synchronously.
func extractHello(r *http.Request) helloContext {
	return helloContext{value: r.Header.Get(helloHeader)}
}

// wrapHello is the Wrapper half: it runs exactly once, right before the
// stub executor's response is sent, echoing the captured header back
// so a caller can observe that extraction ran ahead of the handler and
// wrapping ran ahead of the flush, not interleaved with it.
func wrapHello(ctx helloContext, w http.ResponseWriter) {
	if ctx.value != "" {
		w.Header().Set(helloHeader, ctx.value)
	}
}

// securityHeaders sets the usual hardening header set, with HSTS only on
// connections that actually arrived over TLS (directly or via a proxy).
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware builds a go-chi/cors handler from cfg.
func corsMiddleware(cfg *Config) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   cfg.CORSAllowedMethods,
		AllowedHeaders:   []string{"Content-Type", "X-Hello"},
		AllowCredentials: cfg.CORSAllowCredentials,
		MaxAge:           86400,
	})
}

// rateLimitMiddleware builds a per-IP go-chi/httprate limiter from cfg,
// or a no-op when rate limiting is disabled.
func rateLimitMiddleware(cfg *Config) func(http.Handler) http.Handler {
	if cfg.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		cfg.RateLimitRequests,
		cfg.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
	)
}
