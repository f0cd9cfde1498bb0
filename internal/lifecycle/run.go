// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/gatewaycore/internal/logging"
)

// ServeConfig bundles the event sources and factory collaborators Serve
// wires into a running lifecycle. ConfigSource, SchemaSource, and
// ShutdownSource are the source adapters the caller has already selected
// (Static/PullStream/WatchedFile/Registry/CtrlC/...); Router and Server
// are the factory collaborators (or the reference chi-based ones).
type ServeConfig struct {
	ConfigSource   <-chan Event
	SchemaSource   <-chan Event
	ShutdownSource <-chan Event

	Router RouterServiceFactory
	Server HttpServerFactory

	// ShutdownDrain bounds graceful stop. Zero selects DefaultShutdownDrain.
	ShutdownDrain time.Duration
}

// Serve wires the three source channels through the multiplexer (Merge,
// TruncateAndTerminate) into a StateMachine, returning a Handle
// immediately. The state machine runs until a Shutdown event arrives, from
// ShutdownSource or from Shutdown on the returned Handle, or until ctx is
// cancelled. The adapter goroutines feeding it stop when ctx is cancelled.
func Serve(ctx context.Context, cfg ServeConfig) *Handle {
	handleShutdown := make(chan Event, 1)

	merged := Merge(ctx, cfg.ShutdownSource, cfg.ConfigSource, cfg.SchemaSource, handleShutdown)
	terminated := TruncateAndTerminate(ctx, merged)

	sm := &StateMachine{
		Router:        cfg.Router,
		Server:        cfg.Server,
		ShutdownDrain: cfg.ShutdownDrain,
		StateCh:       make(chan State, 1),
	}
	if sm.ShutdownDrain <= 0 {
		sm.ShutdownDrain = DefaultShutdownDrain
	}

	h := newHandle(sm.StateCh, handleShutdown)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.Error().Interface("panic", r).Msg("lifecycle: state machine panicked")
				h.finish(fmt.Errorf("%w: %v", ErrStartup, r))
			}
		}()
		h.finish(sm.Run(ctx, terminated))
	}()

	return h
}
