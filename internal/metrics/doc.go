// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

/*
Package metrics provides Prometheus instrumentation for the gateway
lifecycle core, exposed at /metrics in the usual text format.

# Available Metrics

HTTP (reference pipeline):
  - http_requests_total: method, status_code
  - http_request_duration_seconds: method
  - method_guard_rejections_total: method (method-guard checkpoint)

Lifecycle (state machine):
  - lifecycle_state: 0=startup, 1=running, 2=stopped, 3=errored
  - lifecycle_transitions_total: from_state, to_state
  - lifecycle_reloads_total: trigger, result
  - lifecycle_shutdown_duration_seconds

Registry (uplink schema source):
  - registry_polls_total: result (updated, unchanged, error, rejected)
  - registry_poll_duration_seconds
  - registry_last_success_timestamp

Circuit breaker (shared by any gobreaker-wrapped client):
  - circuit_breaker_state: name
  - circuit_breaker_requests_total: name, result
  - circuit_breaker_state_transitions_total: name, from_state, to_state

System:
  - app_info: version, go_version
  - app_uptime_seconds

# Usage

	metrics.RecordHTTPRequest(r.Method, strconv.Itoa(status), elapsed)
	metrics.RecordLifecycleTransition("running", "stopped", 2)
	metrics.RecordRegistryPoll("updated", elapsed)

# See Also

  - internal/lifecycle: emits the lifecycle_* metrics on every transition
  - internal/registry: emits the registry_* and circuit_breaker_* metrics
  - internal/middleware: emits the http_* metrics
  - internal/pipeline: emits the method_guard_* metrics
*/
package metrics
