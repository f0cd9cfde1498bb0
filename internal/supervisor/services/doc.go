// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

/*
Package services adapts the gateway's running HTTP server onto suture's
Service contract so the supervisor tree can restart it after an
unexpected crash.

HTTPService wraps a Server (a blocking Serve over a pre-bound listener
plus a graceful Shutdown, the shape internal/chirouter's running server
exposes):

	svc := services.NewHTTPService(runningServer, 10*time.Second)
	token := tree.AddAPIService(svc)

Serve blocks in a goroutine until the underlying server stops. A nil or
http.ErrServerClosed result means the lifecycle state machine stopped it
deliberately and the supervisor lets it rest; any other error counts as
a crash and triggers a restart subject to the tree's failure threshold
and backoff. Context cancellation drains in-flight requests under the
configured deadline before returning.

The lifecycle state machine stays the sole authority on when servers
start, hot-swap, and stop; this package only adds the restart safety net
around the goroutine doing the serving.
*/
package services
