// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Server is the serving half the supervisor runs: a blocking Serve over
// an already-bound listener, and a graceful Shutdown. The gateway's
// HttpServerFactory binds the listener itself before registration, so
// the supervised restart path never races another bind on the same
// address.
type Server interface {
	Serve() error
	Shutdown(ctx context.Context) error
}

// HTTPService adapts a Server onto suture's context-aware Serve
// contract: Serve runs in a goroutine, and context cancellation turns
// into a bounded graceful Shutdown.
type HTTPService struct {
	server        Server
	drainDeadline time.Duration
}

// NewHTTPService wraps server for supervision. drainDeadline bounds how
// long a cancellation-triggered shutdown waits for in-flight requests.
func NewHTTPService(server Server, drainDeadline time.Duration) *HTTPService {
	if drainDeadline <= 0 {
		drainDeadline = 10 * time.Second
	}
	return &HTTPService{server: server, drainDeadline: drainDeadline}
}

// Serve implements suture.Service. A nil or http.ErrServerClosed return
// from the underlying Serve is a clean stop (the state machine shut the
// server down deliberately); anything else is a crash the supervisor
// will restart per its failure policy.
func (s *HTTPService) Serve(ctx context.Context) error {
	served := make(chan error, 1)
	go func() {
		served <- s.server.Serve()
	}()

	select {
	case err := <-served:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("gateway http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		// The cancelled ctx cannot carry the drain; shutdown gets its
		// own deadline.
		drainCtx, cancel := context.WithTimeout(context.Background(), s.drainDeadline)
		defer cancel()
		if err := s.server.Shutdown(drainCtx); err != nil {
			return fmt.Errorf("gateway http server shutdown failed: %w", err)
		}
		<-served
		return ctx.Err()
	}
}

// String implements fmt.Stringer; suture uses it to name the service in
// restart events.
func (s *HTTPService) String() string {
	return "gateway-http"
}
