// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package lifecycle

import "errors"

// Sentinel errors surfaced at the handle's completion future. Callers
// distinguish them with errors.Is; errors that wrap an underlying cause do
// so with fmt.Errorf("...: %w", err) at the call site so errors.Is still
// matches the sentinel.
var (
	// ErrStartup means the state machine goroutine never began running,
	// or panicked before reaching a terminal state.
	ErrStartup = errors.New("lifecycle: startup failed")

	// ErrHTTPServerLifecycle means graceful stop of the running server
	// failed.
	ErrHTTPServerLifecycle = errors.New("lifecycle: http server lifecycle error")

	// ErrNoConfiguration means NoMoreConfiguration arrived before any
	// valid configuration was ever received.
	ErrNoConfiguration = errors.New("lifecycle: no valid configuration supplied")

	// ErrNoSchema means NoMoreSchema arrived before any valid schema was
	// ever received.
	ErrNoSchema = errors.New("lifecycle: no valid schema supplied")

	// ErrDeserializeConfig means a configuration file was not valid
	// against the external validator's expected shape.
	ErrDeserializeConfig = errors.New("lifecycle: could not deserialize configuration")

	// ErrReadConfig means an I/O failure occurred while reading a
	// configuration file.
	ErrReadConfig = errors.New("lifecycle: could not read configuration")

	// ErrConfig means the external validator rejected a configuration.
	ErrConfig = errors.New("lifecycle: configuration rejected")

	// ErrReadSchema means a schema file failed to parse.
	ErrReadSchema = errors.New("lifecycle: could not read schema")

	// ErrServiceCreation means the RouterServiceFactory failed to build a
	// pipeline.
	ErrServiceCreation = errors.New("lifecycle: could not create http pipeline")

	// ErrServerCreation means the HttpServerFactory failed to bind a
	// listener.
	ErrServerCreation = errors.New("lifecycle: could not create http server")

	// ErrAlreadyTaken means a Handle's single-use state observation
	// (Ready or StateReceiver, whichever came first) has already been
	// claimed by an earlier call.
	ErrAlreadyTaken = errors.New("lifecycle: state observation already taken")
)
