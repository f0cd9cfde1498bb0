// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package lifecycle

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
)

// fakeConfig and fakeSchema are the minimal Configuration/Schema
// implementations shared by this package's tests.
type fakeConfig struct{ listen string }

func (c fakeConfig) ListenSpec() string { return c.listen }

type fakeSchema struct{ hash string }

func (s fakeSchema) Hash() string { return s.hash }

// fakeRunningServer is a RunningServer that never actually binds a socket;
// it just tracks calls so tests can assert on the sequence of factory
// interactions.
type fakeRunningServer struct {
	addr string

	mu       sync.Mutex
	handler  http.Handler
	stopped  bool
	stopErr  error
	hotSwaps int
}

func (s *fakeRunningServer) BoundAddress() string { return s.addr }

func (s *fakeRunningServer) HotSwap(h http.Handler) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
	s.hotSwaps++
	return nil
}

func (s *fakeRunningServer) GracefulStop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	return s.stopErr
}

// fakeRouterFactory builds no real handler; it just returns a sentinel and
// lets the test control hot-swappability and failure per call.
type fakeRouterFactory struct {
	hotSwappable bool
	failOn       func(cfg Configuration, schema Schema) bool
	calls        atomic.Int32
}

func (f *fakeRouterFactory) NewRouter(ctx context.Context, cfg Configuration, schema Schema, previous http.Handler) (http.Handler, bool, error) {
	f.calls.Add(1)
	if f.failOn != nil && f.failOn(cfg, schema) {
		return nil, false, errors.New("fake: router construction failed")
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), f.hotSwappable, nil
}

// fakeServerFactory hands back fakeRunningServer instances and records
// them in creation order so tests can inspect every server bound.
type fakeServerFactory struct {
	failOn func(cfg Configuration) bool

	mu      sync.Mutex
	servers []*fakeRunningServer
}

func (f *fakeServerFactory) NewServer(ctx context.Context, cfg Configuration, handler http.Handler) (RunningServer, error) {
	if f.failOn != nil && f.failOn(cfg) {
		return nil, errors.New("fake: server bind failed")
	}
	s := &fakeRunningServer{addr: cfg.ListenSpec(), handler: handler}
	f.mu.Lock()
	f.servers = append(f.servers, s)
	f.mu.Unlock()
	return s, nil
}
