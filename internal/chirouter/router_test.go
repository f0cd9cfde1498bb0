// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package chirouter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/gatewaycore/internal/lifecycle"
	"github.com/tomtom215/gatewaycore/internal/registry"
)

func testSchema(t *testing.T) lifecycle.Schema {
	t.Helper()
	s, err := registry.ParseSchema([]byte("type Query { hello: String }"))
	if err != nil {
		t.Fatalf("ParseSchema: %v", err)
	}
	return s
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := DefaultConfig()
	cfg.RateLimitDisabled = true
	r := NewRouter(64)
	handler, hotSwappable, err := r.NewRouter(context.Background(), cfg, testSchema(t), nil)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	if !hotSwappable {
		t.Fatalf("NewRouter: want hotSwappable=true")
	}
	return handler
}

func TestRouter_QueryAllowedOverGet(t *testing.T) {
	handler := newTestRouter(t)

	body := strings.NewReader(`{"query":"query { hello }"}`)
	req := httptest.NewRequest(http.MethodGet, "/graphql", body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("query over GET: got status %d, want 200", rec.Code)
	}
}

func TestRouter_MutationRejectedOverGet(t *testing.T) {
	handler := newTestRouter(t)

	body := strings.NewReader(`{"query":"mutation { createThing }"}`)
	req := httptest.NewRequest(http.MethodGet, "/graphql", body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("mutation over GET: got status %d, want 405", rec.Code)
	}
	if got := rec.Header().Get("Allow"); got != http.MethodPost {
		t.Errorf("Allow header = %q, want POST", got)
	}
}

// Every non-POST verb must still reach the method guard rather than being
// rejected by chi's own method-specific routing, which is why /graphql is
// mounted with r.Handle, not r.Post.
func TestRouter_MutationRejectedOverForbiddenMethods(t *testing.T) {
	handler := newTestRouter(t)

	for _, method := range []string{http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodHead} {
		body := strings.NewReader(`{"query":"mutation { createThing }"}`)
		req := httptest.NewRequest(method, "/graphql", body)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("method %s: got status %d, want 405", method, rec.Code)
		}
	}
}

func TestRouter_MutationAllowedOverPost(t *testing.T) {
	handler := newTestRouter(t)

	body := strings.NewReader(`{"query":"mutation { createThing }"}`)
	req := httptest.NewRequest(http.MethodPost, "/graphql", body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("mutation over POST: got status %d, want 200", rec.Code)
	}
}

// The future-with-context middleware extracts X-Hello before the stub
// executor runs, then wraps it back onto the response right before the
// executor's own write, never interleaved with it.
func TestRouter_HelloHeaderRoundTrip(t *testing.T) {
	handler := newTestRouter(t)

	body := strings.NewReader(`{"query":"query { hello }"}`)
	req := httptest.NewRequest(http.MethodGet, "/graphql", body)
	req.Header.Set(helloHeader, "world")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(helloHeader); got != "world" {
		t.Errorf("X-Hello header = %q, want %q", got, "world")
	}
}

func TestRouter_HelloHeaderAbsentWhenNotSent(t *testing.T) {
	handler := newTestRouter(t)

	body := strings.NewReader(`{"query":"query { hello }"}`)
	req := httptest.NewRequest(http.MethodGet, "/graphql", body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(helloHeader); got != "" {
		t.Errorf("X-Hello header = %q, want empty", got)
	}
}

func TestRouter_Healthz(t *testing.T) {
	handler := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: got status %d, want 200", rec.Code)
	}
}

func TestRouter_RejectsWrongConfigurationType(t *testing.T) {
	r := NewRouter(64)
	_, _, err := r.NewRouter(context.Background(), wrongConfiguration{}, testSchema(t), nil)
	if err == nil {
		t.Fatal("NewRouter: want error for non-*Config Configuration")
	}
}

type wrongConfiguration struct{}

func (wrongConfiguration) ListenSpec() string { return "127.0.0.1:0" }
