// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package lifecycle

import (
	"context"
	"net/http"
)

// Configuration is an opaque, already-validated settings blob. The state
// machine only needs one thing from it: the listen specification, used to
// decide whether a reload can hot-swap the running pipeline in place or
// requires stopping and rebinding. Equality is by content, so
// implementations backed by a struct should make ListenSpec stable and
// comparable with ==.
type Configuration interface {
	// ListenSpec returns the address the HTTP server should bind, e.g.
	// "127.0.0.1:4000" or "127.0.0.1:0" for an OS-assigned port.
	ListenSpec() string
}

// Schema is an opaque, already-parsed GraphQL supergraph. The state
// machine only needs a stable content hash to report in State.Running.
type Schema interface {
	Hash() string
}

// EventKind tags the variant carried by an Event.
type EventKind int

const (
	EventUpdateConfiguration EventKind = iota
	EventNoMoreConfiguration
	EventUpdateSchema
	EventNoMoreSchema
	EventShutdown
)

func (k EventKind) String() string {
	switch k {
	case EventUpdateConfiguration:
		return "update_configuration"
	case EventNoMoreConfiguration:
		return "no_more_configuration"
	case EventUpdateSchema:
		return "update_schema"
	case EventNoMoreSchema:
		return "no_more_schema"
	case EventShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Event is the unit broadcast between the multiplexer and the state
// machine. Configuration is set only for EventUpdateConfiguration, Schema
// only for EventUpdateSchema; every other field is the zero value.
type Event struct {
	Kind          EventKind
	Configuration Configuration
	Schema        Schema
}

// StateKind tags the variant carried by a State.
type StateKind int

const (
	StateStartup StateKind = iota
	StateRunning
	StateStopped
	StateErrored
)

func (k StateKind) String() string {
	switch k {
	case StateStartup:
		return "startup"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// State is the observable lifecycle state broadcast to Handle subscribers.
// Address and SchemaHash are set only when Kind is StateRunning.
type State struct {
	Kind       StateKind
	Address    string
	SchemaHash string
}

// RunningServer is what an HttpServerFactory hands back once it has bound
// a listener and started serving a Pipeline.
type RunningServer interface {
	// BoundAddress is the actual address the server is listening on (with
	// the OS-assigned port resolved if the configuration requested port 0).
	BoundAddress() string

	// HotSwap atomically replaces the serving handler without rebinding
	// the listen socket.
	HotSwap(handler http.Handler) error

	// GracefulStop drains in-flight requests and stops serving, honoring
	// ctx's deadline as the drain window.
	GracefulStop(ctx context.Context) error
}

// RouterServiceFactory builds the request pipeline the HTTP server serves.
// When previous is non-nil the factory may return hotSwappable=true to
// signal the state machine that the new pipeline can replace the running
// one without rebinding the listen socket.
type RouterServiceFactory interface {
	NewRouter(ctx context.Context, cfg Configuration, schema Schema, previous http.Handler) (pipeline http.Handler, hotSwappable bool, err error)
}

// HttpServerFactory binds a listener for cfg's listen spec, starts serving
// handler, and returns a handle to the running instance.
type HttpServerFactory interface {
	NewServer(ctx context.Context, cfg Configuration, handler http.Handler) (RunningServer, error)
}
