// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

// Package registry implements the remote registry schema source: an
// Apollo-uplink-style HTTPS poller, circuit-broken against transient
// failures, emitting lifecycle.Event values an internal/lifecycle.Serve
// caller wires in as a SchemaSource.
package registry
