// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package lifecycle

import (
	"context"
	"testing"
	"time"
)

func TestMergeFansInAllSources(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cfg := StaticConfigurationSource(fakeConfig{listen: "127.0.0.1:0"})
	schema := StaticSchemaSource(fakeSchema{hash: "h1"})
	shutdown := make(chan Event)
	close(shutdown)
	handleShutdown := make(chan Event)
	close(handleShutdown)

	merged := Merge(ctx, shutdown, cfg, schema, handleShutdown)
	events := drain(t, merged, time.Second)

	var configs, schemas, noMoreConfig, noMoreSchema int
	for _, ev := range events {
		switch ev.Kind {
		case EventUpdateConfiguration:
			configs++
		case EventNoMoreConfiguration:
			noMoreConfig++
		case EventUpdateSchema:
			schemas++
		case EventNoMoreSchema:
			noMoreSchema++
		}
	}
	if configs != 1 || noMoreConfig != 1 || schemas != 1 || noMoreSchema != 1 {
		t.Fatalf("expected exactly one of each config/schema update+noMore, got %+v", events)
	}
}

func TestTruncateAndTerminateExactlyOneShutdown(t *testing.T) {
	in := make(chan Event, 4)
	in <- Event{Kind: EventUpdateConfiguration, Configuration: fakeConfig{listen: "a"}}
	in <- Event{Kind: EventShutdown}
	in <- Event{Kind: EventShutdown} // should never be observed downstream
	in <- Event{Kind: EventUpdateSchema, Schema: fakeSchema{hash: "h"}}
	close(in)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out := drain(t, TruncateAndTerminate(ctx, in), time.Second)

	shutdowns := 0
	for _, ev := range out {
		if ev.Kind == EventShutdown {
			shutdowns++
		}
	}
	if shutdowns != 1 {
		t.Fatalf("expected exactly one terminal Shutdown, got %d in %+v", shutdowns, out)
	}
	if out[len(out)-1].Kind != EventShutdown {
		t.Fatalf("Shutdown must be the last event, got %+v", out)
	}
	if len(out) != 2 {
		t.Fatalf("events after the first Shutdown must be dropped, got %+v", out)
	}
}

func TestTruncateAndTerminateAppendsShutdownWhenSourceNeverSendsOne(t *testing.T) {
	in := make(chan Event, 1)
	in <- Event{Kind: EventUpdateConfiguration, Configuration: fakeConfig{listen: "a"}}
	close(in)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out := drain(t, TruncateAndTerminate(ctx, in), time.Second)
	if len(out) != 2 || out[1].Kind != EventShutdown {
		t.Fatalf("expected [update, shutdown], got %+v", out)
	}
}
