// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package lifecycle

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/gatewaycore/internal/logging"
	"github.com/tomtom215/gatewaycore/internal/metrics"
)

// DefaultShutdownDrain is the graceful-stop window applied when a
// StateMachine is constructed without an explicit one.
const DefaultShutdownDrain = 15 * time.Second

// StateMachine consumes a terminated event stream (see TruncateAndTerminate)
// and drives the HTTP pipeline lifecycle through the Router/HttpServer
// factory collaborators, broadcasting every successful transition to
// StateCh. There is ever at most one non-terminal instance of Startup or
// Running live for a given Run call; Startup and Running are distinguished
// internally by whether Start has yet succeeded, since their Shutdown
// handling is otherwise identical.
type StateMachine struct {
	Router        RouterServiceFactory
	Server        HttpServerFactory
	ShutdownDrain time.Duration

	// StateCh is a capacity-1 channel: a slow reader only ever sees the
	// most recent state, except the final terminal state, which Run
	// guarantees is either delivered or the channel is closed having been
	// the last value enqueued.
	StateCh chan State
}

// NewStateMachine constructs a StateMachine with its own state channel and
// the default shutdown drain.
func NewStateMachine(router RouterServiceFactory, server HttpServerFactory) *StateMachine {
	return &StateMachine{
		Router:        router,
		Server:        server,
		ShutdownDrain: DefaultShutdownDrain,
		StateCh:       make(chan State, 1),
	}
}

// lifecycleContext is the state kept across transitions while Run
// processes events: last-seen configuration/schema, the currently running
// server and the pipeline it serves, and whether each input stream has
// signalled NoMore.
type lifecycleContext struct {
	config      Configuration
	schema      Schema
	server      RunningServer
	pipeline    http.Handler
	configEnded bool
	schemaEnded bool
}

// broadcast enqueues s onto StateCh, overwriting any unread buffered value
// so a slow subscriber only ever observes the latest intermediate state.
// Safe because Run is the sole producer.
func (sm *StateMachine) broadcast(s State) {
	for {
		select {
		case sm.StateCh <- s:
			return
		default:
			select {
			case <-sm.StateCh:
			default:
			}
		}
	}
}

// Run drives the lifecycle to completion, consuming events until the
// terminated stream closes (which TruncateAndTerminate guarantees happens
// at most once, after exactly one Shutdown). It returns nil on a clean
// Stopped transition, or a non-nil error (wrapping one of the sentinels in
// errors.go) on Errored.
func (sm *StateMachine) Run(ctx context.Context, events <-chan Event) error {
	defer close(sm.StateCh)

	if sm.ShutdownDrain <= 0 {
		sm.ShutdownDrain = DefaultShutdownDrain
	}

	sm.broadcast(State{Kind: StateStartup})

	var cc lifecycleContext
	started := false

	for ev := range events {
		switch ev.Kind {
		case EventUpdateConfiguration:
			if !started {
				cc.config = ev.Configuration
				if cc.schema == nil {
					continue
				}
				if err := sm.start(ctx, &cc); err != nil {
					return sm.terminalError(started, err)
				}
				started = true
				continue
			}
			if err := sm.reload(ctx, &cc, "configuration", ev.Configuration, cc.schema); err != nil {
				return sm.terminalError(started, err)
			}

		case EventUpdateSchema:
			if !started {
				cc.schema = ev.Schema
				if cc.config == nil {
					continue
				}
				if err := sm.start(ctx, &cc); err != nil {
					return sm.terminalError(started, err)
				}
				started = true
				continue
			}
			if err := sm.reload(ctx, &cc, "schema", cc.config, ev.Schema); err != nil {
				return sm.terminalError(started, err)
			}

		case EventNoMoreConfiguration:
			cc.configEnded = true
			if !started && cc.config == nil {
				return sm.terminalError(started, ErrNoConfiguration)
			}

		case EventNoMoreSchema:
			cc.schemaEnded = true
			if !started && cc.schema == nil {
				return sm.terminalError(started, ErrNoSchema)
			}

		case EventShutdown:
			return sm.shutdown(&cc)
		}
	}

	// TruncateAndTerminate always appends a final Shutdown, so the stream
	// closing without one should not happen; treat it as shutdown anyway
	// so Run never returns with the state channel left open.
	return sm.shutdown(&cc)
}

// start constructs the first pipeline and server, mutating cc and
// broadcasting Running on success.
func (sm *StateMachine) start(ctx context.Context, cc *lifecycleContext) error {
	pipeline, _, err := sm.Router.NewRouter(ctx, cc.config, cc.schema, nil)
	if err != nil {
		logging.Error().Err(err).Msg("lifecycle: router factory failed during startup")
		return fmt.Errorf("%w: %v", ErrServiceCreation, err)
	}

	server, err := sm.Server.NewServer(ctx, cc.config, pipeline)
	if err != nil {
		logging.Error().Err(err).Msg("lifecycle: server factory failed during startup")
		return fmt.Errorf("%w: %v", ErrServerCreation, err)
	}

	cc.server = server
	cc.pipeline = pipeline

	addr := server.BoundAddress()
	hash := cc.schema.Hash()
	logging.Info().Str("address", addr).Str("schema_hash", hash).Msg("lifecycle: server running")
	metrics.RecordLifecycleTransition("startup", "running", 1)
	sm.broadcast(State{Kind: StateRunning, Address: addr, SchemaHash: hash})
	return nil
}

// reload attempts to build a new pipeline from newConfig/newSchema. It
// returns a non-nil error only for the fatal case described in its
// comment below; every other failure is recovered locally: the previous
// pipeline keeps serving and the state remains Running unchanged.
func (sm *StateMachine) reload(ctx context.Context, cc *lifecycleContext, trigger string, newConfig Configuration, newSchema Schema) error {
	pipeline, hotSwappable, err := sm.Router.NewRouter(ctx, newConfig, newSchema, cc.pipeline)
	if err != nil {
		logging.Error().Err(err).Str("trigger", trigger).Msg("lifecycle: reload failed, keeping previous pipeline")
		metrics.RecordLifecycleReload(trigger, err)
		return nil
	}

	sameAddress := newConfig.ListenSpec() == cc.config.ListenSpec()

	if hotSwappable && sameAddress {
		if err := cc.server.HotSwap(pipeline); err != nil {
			logging.Error().Err(err).Str("trigger", trigger).Msg("lifecycle: hot-swap failed, keeping previous pipeline")
			metrics.RecordLifecycleReload(trigger, err)
			return nil
		}
		cc.config, cc.schema, cc.pipeline = newConfig, newSchema, pipeline
		addr := cc.server.BoundAddress()
		logging.Info().Str("address", addr).Str("schema_hash", newSchema.Hash()).Msg("lifecycle: hot-swapped pipeline")
		metrics.RecordLifecycleReload(trigger, nil)
		sm.broadcast(State{Kind: StateRunning, Address: addr, SchemaHash: newSchema.Hash()})
		return nil
	}

	// The listen address changed, or the factory declined an in-place
	// swap: gracefully stop the old server and start a new one. Unlike a
	// pipeline-construction failure, a bind failure here leaves no server
	// running at all, so it is treated as fatal rather than recovered;
	// there is no "previous pipeline" left to fall back to once the old
	// listener has been released.
	stopCtx, cancel := context.WithTimeout(context.Background(), sm.ShutdownDrain)
	defer cancel()
	if err := cc.server.GracefulStop(stopCtx); err != nil {
		logging.Error().Err(err).Str("trigger", trigger).Msg("lifecycle: graceful stop during rebind failed, keeping previous pipeline")
		metrics.RecordLifecycleReload(trigger, err)
		return nil
	}

	newServer, err := sm.Server.NewServer(ctx, newConfig, pipeline)
	if err != nil {
		logging.Error().Err(err).Str("trigger", trigger).Msg("lifecycle: server factory failed during rebind")
		metrics.RecordLifecycleReload(trigger, err)
		return fmt.Errorf("%w: %v", ErrServerCreation, err)
	}

	cc.server, cc.config, cc.schema, cc.pipeline = newServer, newConfig, newSchema, pipeline
	addr := newServer.BoundAddress()
	logging.Info().Str("address", addr).Str("schema_hash", newSchema.Hash()).Msg("lifecycle: rebound to new address")
	metrics.RecordLifecycleReload(trigger, nil)
	sm.broadcast(State{Kind: StateRunning, Address: addr, SchemaHash: newSchema.Hash()})
	return nil
}

// shutdown gracefully stops the running server (if any) and transitions
// to a terminal state.
func (sm *StateMachine) shutdown(cc *lifecycleContext) error {
	if cc.server == nil {
		sm.terminalStopped()
		return nil
	}

	start := time.Now()
	stopCtx, cancel := context.WithTimeout(context.Background(), sm.ShutdownDrain)
	defer cancel()
	err := cc.server.GracefulStop(stopCtx)
	metrics.RecordLifecycleShutdown(time.Since(start))
	if err != nil {
		logging.Error().Err(err).Msg("lifecycle: graceful stop failed")
		return sm.terminalError(true, fmt.Errorf("%w: %v", ErrHTTPServerLifecycle, err))
	}

	sm.terminalStopped()
	return nil
}

func (sm *StateMachine) terminalError(wasRunning bool, err error) error {
	from := "startup"
	if wasRunning {
		from = "running"
	}
	logging.Error().Err(err).Str("from_state", from).Msg("lifecycle: transitioning to errored")
	metrics.RecordLifecycleTransition(from, "errored", 3)
	sm.broadcast(State{Kind: StateErrored})
	return err
}

func (sm *StateMachine) terminalStopped() {
	logging.Info().Msg("lifecycle: stopped")
	metrics.RecordLifecycleTransition("running", "stopped", 2)
	sm.broadcast(State{Kind: StateStopped})
}
