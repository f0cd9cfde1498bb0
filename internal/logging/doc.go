// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

/*
Package logging is the gateway's structured logging layer, a thin wrapper
over zerolog with one process-wide logger.

Every lifecycle transition, source-adapter error, reload attempt, and
registry poll outcome logs through this package with structured fields,
never fmt.Println or the standard log package:

	logging.Init(logging.Config{Level: "info", Format: "json"})
	logging.Info().Str("address", addr).Str("schema_hash", hash).Msg("lifecycle: server running")
	logging.Error().Err(err).Str("path", path).Msg("lifecycle: failed to read watched file")

A safe default configuration (info, JSON, stderr) is installed by init()
so code paths that log before main calls Init (test goroutines, early
source adapters) still work. Init may be called again at any time; the
last configuration wins.

Ctx(ctx) derives a logger stamped with the correlation and request ids
the request-ID middleware placed in the context, so one request's log
lines thread together across middleware, checkpoints, and the stub
executor.

NewSlogLogger bridges to log/slog for suture: the supervisor tree's
restart events land in the same zerolog stream as everything else.

For tests, NewTestLogger(&buf) captures structured output for assertions
without touching the process-wide logger.
*/
package logging
