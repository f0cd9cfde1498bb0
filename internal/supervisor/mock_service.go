// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package supervisor

import (
	"context"
	"fmt"
	"sync/atomic"
)

// MockService is a minimal suture.Service used by this package's own tests.
type MockService struct {
	name       string
	startCount atomic.Int64
	failCount  atomic.Int64
}

// NewMockService creates a named mock service.
func NewMockService(name string) *MockService {
	return &MockService{name: name}
}

// SetFailCount makes the service return an error on its first n starts.
func (m *MockService) SetFailCount(n int64) {
	m.failCount.Store(n)
}

// StartCount reports how many times Serve has been invoked.
func (m *MockService) StartCount() int64 {
	return m.startCount.Load()
}

// Serve implements suture.Service.
func (m *MockService) Serve(ctx context.Context) error {
	m.startCount.Add(1)
	if m.failCount.Load() > 0 {
		m.failCount.Add(-1)
		return fmt.Errorf("mock service %s: injected failure", m.name)
	}
	<-ctx.Done()
	return ctx.Err()
}

// String implements fmt.Stringer for suture's logging.
func (m *MockService) String() string {
	return m.name
}
