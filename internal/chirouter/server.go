// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package chirouter

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/gatewaycore/internal/lifecycle"
	"github.com/tomtom215/gatewaycore/internal/supervisor"
	"github.com/tomtom215/gatewaycore/internal/supervisor/services"
)

// Server is the reference HttpServerFactory. Each NewServer call
// pre-binds a net.Listener before handing control back to the lifecycle
// state machine, so BoundAddress resolves an OS-assigned port immediately,
// and routes every request through an atomic.Pointer so HotSwap never
// touches the listening socket.
//
// Every running instance is also registered with a shared supervisor.Tree
// as a suture.Service, giving the process a crash-restart safety net
// independent of the state machine's own start/stop/hot-swap decisions.
type Server struct {
	logger          *slog.Logger
	shutdownTimeout time.Duration

	treeOnce sync.Once
	tree     *supervisor.Tree
	treeErr  error
}

var _ lifecycle.HttpServerFactory = (*Server)(nil)

// NewServerFactory constructs a Server. shutdownTimeout bounds how long the
// supervised HTTPService waits for a drain before abandoning it;
// GracefulStop itself always honors the caller's ctx deadline directly via
// *http.Server.Shutdown, since the state machine already computes that
// deadline from StateMachine.ShutdownDrain.
func NewServerFactory(logger *slog.Logger, shutdownTimeout time.Duration) *Server {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &Server{logger: logger, shutdownTimeout: shutdownTimeout}
}

// ensureTree lazily builds and starts the shared supervisor.Tree on first
// use. The tree's background context is intentionally process-lifetime,
// not the per-call ctx NewServer receives, since the tree must outlive any
// single reload.
func (s *Server) ensureTree() (*supervisor.Tree, error) {
	s.treeOnce.Do(func() {
		tree, err := supervisor.NewTree(s.logger, supervisor.DefaultTreeConfig())
		if err != nil {
			s.treeErr = err
			return
		}
		tree.ServeBackground(context.Background())
		s.tree = tree
	})
	return s.tree, s.treeErr
}

// NewServer implements lifecycle.HttpServerFactory.
func (s *Server) NewServer(ctx context.Context, cfg lifecycle.Configuration, handler http.Handler) (lifecycle.RunningServer, error) {
	tree, err := s.ensureTree()
	if err != nil {
		return nil, fmt.Errorf("chirouter: supervisor tree unavailable: %w", err)
	}

	ln, err := net.Listen("tcp", cfg.ListenSpec())
	if err != nil {
		return nil, fmt.Errorf("chirouter: listen %s: %w", cfg.ListenSpec(), err)
	}

	rs := &runningServer{tree: tree, listener: ln}
	rs.handler.Store(&handler)

	rs.httpServer = &http.Server{Handler: http.HandlerFunc(rs.serveHTTP)}
	rs.token = tree.AddAPIService(services.NewHTTPService(rs, s.shutdownTimeout))

	return rs, nil
}

// runningServer is the lifecycle.RunningServer this package hands back.
type runningServer struct {
	tree       *supervisor.Tree
	listener   net.Listener
	httpServer *http.Server
	token      suture.ServiceToken
	handler    atomic.Pointer[http.Handler]
}

var _ lifecycle.RunningServer = (*runningServer)(nil)

func (rs *runningServer) serveHTTP(w http.ResponseWriter, r *http.Request) {
	(*rs.handler.Load()).ServeHTTP(w, r)
}

// Serve implements services.Server over the pre-bound listener; the
// supervised goroutine blocks here for the server's whole life.
func (rs *runningServer) Serve() error {
	return rs.httpServer.Serve(rs.listener)
}

// Shutdown implements services.Server for the supervisor's
// cancellation-triggered drain path.
func (rs *runningServer) Shutdown(ctx context.Context) error {
	return rs.httpServer.Shutdown(ctx)
}

// BoundAddress implements lifecycle.RunningServer.
func (rs *runningServer) BoundAddress() string {
	return rs.listener.Addr().String()
}

// HotSwap implements lifecycle.RunningServer: it never rebinds rs.listener,
// it only repoints the handler the already-running *http.Server dispatches
// to.
func (rs *runningServer) HotSwap(handler http.Handler) error {
	rs.handler.Store(&handler)
	return nil
}

// GracefulStop implements lifecycle.RunningServer. It shuts the server down
// directly, honoring ctx's deadline precisely (the state machine derives
// ctx from StateMachine.ShutdownDrain). It then best-effort removes the
// service from the supervisor tree: Shutdown already makes the supervised
// HTTPService's Serve return nil on its own, so the token may already be
// gone by the time this runs, and that is not an error worth reporting to
// the caller.
func (rs *runningServer) GracefulStop(ctx context.Context) error {
	err := rs.httpServer.Shutdown(ctx)
	_ = rs.tree.RemoveAPIService(rs.token)
	return err
}
