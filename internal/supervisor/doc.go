// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

/*
Package supervisor wraps the gateway's currently active HTTP server in a
suture v4 supervisor so a panic inside the serving goroutine restarts the
server instead of killing the process silently.

# Overview

	RootSupervisor ("gateway-core")
	└── APISupervisor ("api-layer")
	    └── HTTPService (the currently active pipeline)

Unlike a general-purpose process supervisor, this tree holds at most one
service in the api layer at a time: the lifecycle state machine in
internal/lifecycle owns all start/stop/hot-swap decisions and adds or
removes the api service as it transitions. The tree's only job is the
restart safety net around whatever is currently registered.

# Usage

	logger := slog.Default()
	tree, err := supervisor.NewTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
	    log.Fatal(err)
	}

	token := tree.AddAPIService(services.NewHTTPService(server, 15*time.Second))
	errCh := tree.ServeBackground(ctx)
	...
	tree.RemoveAndWait(token, 10*time.Second) // on reload requiring rebind

# Service interface

All services must implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Return nil for a clean stop, return an error to trigger a restart, and
return promptly once ctx is canceled.
*/
package supervisor
