// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package lifecycle

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func drain(t *testing.T, ch <-chan Event, timeout time.Duration) []Event {
	t.Helper()
	var out []Event
	deadline := time.After(timeout)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-deadline:
			t.Fatalf("timed out draining events, got %d so far", len(out))
		}
	}
}

func TestStaticConfigurationSourceIdempotence(t *testing.T) {
	cfg := fakeConfig{listen: "127.0.0.1:0"}
	events := drain(t, StaticConfigurationSource(cfg), time.Second)

	if len(events) != 2 {
		t.Fatalf("expected exactly 2 events, got %d: %+v", len(events), events)
	}
	if events[0].Kind != EventUpdateConfiguration || events[0].Configuration != Configuration(cfg) {
		t.Errorf("first event should be UpdateConfiguration(cfg), got %+v", events[0])
	}
	if events[1].Kind != EventNoMoreConfiguration {
		t.Errorf("second event should be NoMoreConfiguration, got %+v", events[1])
	}
}

func TestStaticSchemaSourceIdempotence(t *testing.T) {
	schema := fakeSchema{hash: "abc123"}
	events := drain(t, StaticSchemaSource(schema), time.Second)

	if len(events) != 2 {
		t.Fatalf("expected exactly 2 events, got %d: %+v", len(events), events)
	}
	if events[0].Kind != EventUpdateSchema {
		t.Errorf("first event should be UpdateSchema, got %+v", events[0])
	}
	if events[1].Kind != EventNoMoreSchema {
		t.Errorf("second event should be NoMoreSchema, got %+v", events[1])
	}
}

func TestConfigurationWatchedFileMissingAtStartup(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	missing := filepath.Join(t.TempDir(), "does-not-exist.yaml")
	events := drain(t, ConfigurationWatchedFile(ctx, missing, true, 10*time.Millisecond, parseFakeConfig), time.Second)

	if len(events) != 1 || events[0].Kind != EventNoMoreConfiguration {
		t.Fatalf("expected exactly [NoMoreConfiguration] for a missing file, got %+v", events)
	}
}

func TestConfigurationWatchedFileGarbageAtStartup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":Garbage:::"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Even with watch=true, an unparseable file at startup terminates the
	// source: watching only begins after a successful first read.
	events := drain(t, ConfigurationWatchedFile(ctx, path, true, 10*time.Millisecond, parseFakeConfig), time.Second)

	if len(events) != 1 || events[0].Kind != EventNoMoreConfiguration {
		t.Fatalf("expected exactly [NoMoreConfiguration] for garbage at startup, got %+v", events)
	}
}

func TestConfigurationWatchedFileGarbageStaysLive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("127.0.0.1:5000"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := ConfigurationWatchedFile(ctx, path, true, 10*time.Millisecond, parseFakeConfig)

	first := <-out
	if first.Kind != EventUpdateConfiguration {
		t.Fatalf("expected initial UpdateConfiguration, got %+v", first)
	}

	if err := os.WriteFile(path, []byte(":garbage:::"), 0o644); err != nil {
		t.Fatalf("rewrite file: %v", err)
	}

	select {
	case ev := <-out:
		t.Fatalf("garbage content should not produce an update, got %+v", ev)
	case <-time.After(150 * time.Millisecond):
		// No event observed: watcher stayed live and simply logged/skipped.
	}

	if err := os.WriteFile(path, []byte("127.0.0.1:6000"), 0o644); err != nil {
		t.Fatalf("rewrite file: %v", err)
	}

	select {
	case ev := <-out:
		if ev.Kind != EventUpdateConfiguration || ev.Configuration.ListenSpec() != "127.0.0.1:6000" {
			t.Fatalf("expected UpdateConfiguration(127.0.0.1:6000), got %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not recover after a subsequent valid write")
	}
}

func parseFakeConfig(data []byte) (Configuration, error) {
	s := string(data)
	if len(s) == 0 || s[0] == ':' {
		return nil, errors.New("garbage configuration")
	}
	return fakeConfig{listen: s}, nil
}
