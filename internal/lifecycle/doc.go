// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

// Package lifecycle owns the gateway's startup, hot-reconfiguration, and
// graceful shutdown. Heterogeneous configuration, schema, and shutdown
// sources (internal/registry supplies one more: the polled remote
// registry) are each normalized into a finite channel of Event values
// terminated by a sentinel (source adapters, this package's sources.go and
// shutdown.go). Merge fair-merges and terminates those channels into one
// sequence (multiplex.go) consumed by a single state machine goroutine
// (statemachine.go) that owns at most one running HTTP pipeline, built and
// torn down through the RouterServiceFactory/HttpServerFactory interfaces
// a caller supplies. Handle (handle.go) is the external façade callers
// hold: readiness, one-shot state subscription, and cooperative shutdown.
//
// Configuration and Schema are opaque outside of the two narrow methods
// this package needs from them (ListenSpec and Hash); parsing and
// validation belong to external collaborators, never to this package.
package lifecycle
