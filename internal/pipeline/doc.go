// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

// Package pipeline holds the two request-level primitives that belong to
// the HTTP request pipeline rather than the lifecycle core: the
// method-guard checkpoint, which rejects mutations arriving on anything
// but POST, and the future-with-context middleware, a small composable
// primitive for extracting a value from a request and using it once the
// downstream response is ready to be sent.
//
// Neither primitive depends on a real federation executor; QueryPlan is a
// minimal stand-in sufficient to answer "does this plan contain a
// mutation", matching the stub executor internal/chirouter wires these
// middlewares in front of.
package pipeline
