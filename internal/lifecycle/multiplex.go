// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package lifecycle

import "context"

// Merge fair-merges shutdown, config, schema, and the handle's own
// shutdown-trigger channel into one sequence. Fairness falls out of Go's
// select statement, which picks uniformly at random among the cases ready
// in a given iteration, so no single source can starve the others. A
// channel that closes is nilled out so it is never selected again (a nil
// channel blocks forever in a select, which is exactly "permanently not
// ready").
//
// Merge alone does not truncate or terminate the sequence; callers chain
// it through TruncateAndTerminate.
func Merge(ctx context.Context, shutdown, config, schema, handleShutdown <-chan Event) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		for shutdown != nil || config != nil || schema != nil || handleShutdown != nil {
			select {
			case ev, ok := <-shutdown:
				if !ok {
					shutdown = nil
					continue
				}
				if !send(ctx, out, ev) {
					return
				}
			case ev, ok := <-config:
				if !ok {
					config = nil
					continue
				}
				if !send(ctx, out, ev) {
					return
				}
			case ev, ok := <-schema:
				if !ok {
					schema = nil
					continue
				}
				if !send(ctx, out, ev) {
					return
				}
			case ev, ok := <-handleShutdown:
				if !ok {
					handleShutdown = nil
					continue
				}
				if !send(ctx, out, ev) {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// TruncateAndTerminate drops every event from the first Shutdown onward
// (inclusive) and unconditionally appends exactly one Shutdown at the end.
// This is what guarantees the invariant that every stream observed by the
// state machine ends with exactly one Shutdown, regardless of whether zero,
// one, or several Shutdown events raced in upstream.
func TruncateAndTerminate(ctx context.Context, in <-chan Event) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		defer send(ctx, out, Event{Kind: EventShutdown})

		for ev := range in {
			if ev.Kind == EventShutdown {
				return
			}
			if !send(ctx, out, ev) {
				return
			}
		}
	}()
	return out
}
