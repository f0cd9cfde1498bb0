// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

/*
Package chirouter is the reference RouterServiceFactory/HttpServerFactory
pair: a concrete, swappable implementation of the two interfaces
internal/lifecycle consumes, built on go-chi/chi/v5, so the lifecycle
core is demonstrably runnable end-to-end without a real federation
executor.

Router builds a chi.Mux wrapping a minimal stub GraphQL-over-HTTP
executor: it parses the leading "query"/"mutation" keyword of the
request body's query string, echoes a canned response keyed by that
operation kind, and exists purely so internal/pipeline's method-guard
and future-with-context middleware have something real to sit
in front of. The middleware stack ahead of them comes from
internal/middleware (request ID, Prometheus metrics, gzip compression)
plus go-chi/cors, go-chi/httprate, and a security-headers layer.

Server pre-binds a net.Listener so BoundAddress resolves an OS-assigned
port (":0") before Serve is ever called, routes every request through an
atomic.Pointer[http.Handler] so HotSwap never rebinds the listening
socket, and registers each running instance with a shared
supervisor.Tree for crash-restart.

Config is the opaque lifecycle.Configuration this package's Router and
Server consume; ValidateYAML is the external validator collaborator the
lifecycle core consumes, layering a YAML document over DefaultConfig and
rejecting anything that could not produce a working pipeline.
*/
package chirouter
