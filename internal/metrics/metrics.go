// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics (reference chi router)
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served by the gateway pipeline",
		},
		[]string{"method", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// MethodGuardRejections counts non-POST mutation requests rejected by the
	// method-guard checkpoint.
	MethodGuardRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "method_guard_rejections_total",
			Help: "Total number of requests rejected by the method guard checkpoint",
		},
		[]string{"method"},
	)

	// Lifecycle metrics (state machine)
	LifecycleState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lifecycle_state",
			Help: "Current lifecycle state (0=startup, 1=running, 2=stopped, 3=errored)",
		},
	)

	LifecycleTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifecycle_transitions_total",
			Help: "Total number of lifecycle state transitions",
		},
		[]string{"from_state", "to_state"},
	)

	LifecycleReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifecycle_reloads_total",
			Help: "Total number of hot reloads attempted by the state machine",
		},
		[]string{"trigger", "result"}, // trigger: "configuration", "schema"; result: "success", "error"
	)

	LifecycleShutdownDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lifecycle_shutdown_duration_seconds",
			Help:    "Duration of the running server's graceful stop after a Shutdown event",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	// Registry metrics (uplink schema source)
	RegistryPollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_polls_total",
			Help: "Total number of registry polling ticks",
		},
		[]string{"result"}, // "updated", "unchanged", "error", "rejected"
	)

	RegistryPollDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "registry_poll_duration_seconds",
			Help:    "Duration of a single registry poll HTTP round trip",
			Buckets: prometheus.DefBuckets,
		},
	)

	RegistryLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "registry_last_success_timestamp",
			Help: "Unix timestamp of the last successful schema fetch from the registry",
		},
	)

	// Circuit Breaker Metrics, shared by any gobreaker-wrapped client (the
	// registry source is the only user today).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through a circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordHTTPRequest records a completed HTTP request handled by the
// reference pipeline.
func RecordHTTPRequest(method, statusCode string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordMethodGuardRejection records a request turned away by the method
// guard checkpoint.
func RecordMethodGuardRejection(method string) {
	MethodGuardRejections.WithLabelValues(method).Inc()
}

// RecordLifecycleTransition records a state machine transition and updates
// the current-state gauge. stateValue follows the same 0-3 encoding as
// LifecycleState.
func RecordLifecycleTransition(fromState, toState string, stateValue float64) {
	LifecycleTransitionsTotal.WithLabelValues(fromState, toState).Inc()
	LifecycleState.Set(stateValue)
}

// RecordLifecycleReload records the outcome of a hot reload triggered by an
// UpdateConfiguration or UpdateSchema event.
func RecordLifecycleReload(trigger string, err error) {
	if err != nil {
		LifecycleReloadsTotal.WithLabelValues(trigger, "error").Inc()
		return
	}
	LifecycleReloadsTotal.WithLabelValues(trigger, "success").Inc()
}

// RecordLifecycleShutdown records the wall-clock duration of a graceful
// shutdown.
func RecordLifecycleShutdown(duration time.Duration) {
	LifecycleShutdownDuration.Observe(duration.Seconds())
}

// RecordRegistryPoll records the outcome of a single registry polling tick.
func RecordRegistryPoll(result string, duration time.Duration) {
	RegistryPollsTotal.WithLabelValues(result).Inc()
	RegistryPollDuration.Observe(duration.Seconds())
	if result == "updated" {
		RegistryLastSuccess.Set(float64(time.Now().Unix()))
	}
}

// RecordCircuitBreakerResult records a call outcome through a named circuit
// breaker.
func RecordCircuitBreakerResult(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordCircuitBreakerTransition records a circuit breaker state change.
func RecordCircuitBreakerTransition(name, from, to string, stateValue float64) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(stateValue)
}
