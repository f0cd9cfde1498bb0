// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package lifecycle

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/knadh/koanf/providers/file"

	"github.com/tomtom215/gatewaycore/internal/logging"
)

// DefaultWatchDebounce is the coalescing window applied to a watched-file
// source when the caller supplies no debounce.
const DefaultWatchDebounce = 100 * time.Millisecond

// send forwards ev on out, returning false (without sending) if ctx is
// cancelled first.
func send(ctx context.Context, out chan<- Event, ev Event) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// StaticConfigurationSource emits exactly [Update(cfg), NoMore] then
// closes, per the Static source law.
func StaticConfigurationSource(cfg Configuration) <-chan Event {
	out := make(chan Event, 2)
	out <- Event{Kind: EventUpdateConfiguration, Configuration: cfg}
	out <- Event{Kind: EventNoMoreConfiguration}
	close(out)
	return out
}

// StaticSchemaSource emits exactly [Update(schema), NoMore] then closes.
func StaticSchemaSource(schema Schema) <-chan Event {
	out := make(chan Event, 2)
	out <- Event{Kind: EventUpdateSchema, Schema: schema}
	out <- Event{Kind: EventNoMoreSchema}
	close(out)
	return out
}

// ConfigurationPullStream maps each value produced on in into
// UpdateConfiguration; when in is closed it emits NoMoreConfiguration.
func ConfigurationPullStream(ctx context.Context, in <-chan Configuration) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case cfg, ok := <-in:
				if !ok {
					send(ctx, out, Event{Kind: EventNoMoreConfiguration})
					return
				}
				if !send(ctx, out, Event{Kind: EventUpdateConfiguration, Configuration: cfg}) {
					return
				}
			}
		}
	}()
	return out
}

// SchemaPullStream maps each value produced on in into UpdateSchema; when
// in is closed it emits NoMoreSchema.
func SchemaPullStream(ctx context.Context, in <-chan Schema) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case schema, ok := <-in:
				if !ok {
					send(ctx, out, Event{Kind: EventNoMoreSchema})
					return
				}
				if !send(ctx, out, Event{Kind: EventUpdateSchema, Schema: schema}) {
					return
				}
			}
		}
	}()
	return out
}

// watchedFile is the shared engine behind ConfigurationWatchedFile and
// SchemaWatchedFile: stat, initial read+parse, optional fsnotify-backed
// watch with debounce coalescing. T is Configuration or Schema; readErr
// is the sentinel I/O failures are wrapped with before logging.
func watchedFile[T any](
	ctx context.Context,
	path string,
	watch bool,
	debounce time.Duration,
	parse func([]byte) (T, error),
	toUpdate func(T) Event,
	noMore Event,
	readErr error,
) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)

		if _, err := os.Stat(path); err != nil {
			logging.Error().Err(err).Str("path", path).Msg("lifecycle: watched file does not exist at startup")
			send(ctx, out, noMore)
			return
		}

		provider := file.Provider(path)
		read := func() (T, error) {
			var zero T
			data, err := provider.ReadBytes()
			if err != nil {
				return zero, fmt.Errorf("%w: %v", readErr, err)
			}
			return parse(data)
		}

		// A failed initial read terminates the source just like a missing
		// file: watching only ever begins after a successful first read, so
		// the state machine can fail fast on unusable startup input instead
		// of waiting on a filesystem event that may never come.
		v, err := read()
		if err != nil {
			logging.Error().Err(err).Str("path", path).Msg("lifecycle: failed to read or parse watched file")
			send(ctx, out, noMore)
			return
		}
		if !send(ctx, out, toUpdate(v)) {
			return
		}

		if !watch {
			send(ctx, out, noMore)
			return
		}

		if debounce <= 0 {
			debounce = DefaultWatchDebounce
		}

		changed := make(chan struct{}, 1)
		if err := provider.Watch(func(_ interface{}, err error) {
			if err != nil {
				return
			}
			select {
			case changed <- struct{}{}:
			default:
			}
		}); err != nil {
			logging.Error().Err(err).Str("path", path).Msg("lifecycle: failed to subscribe to file changes")
			send(ctx, out, noMore)
			return
		}

		var timer *time.Timer
		var timerC <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case <-changed:
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(debounce)
				}
				timerC = timer.C
			case <-timerC:
				timerC = nil
				if v, err := read(); err != nil {
					logging.Error().Err(err).Str("path", path).Msg("lifecycle: failed to read or parse watched file")
				} else if !send(ctx, out, toUpdate(v)) {
					return
				}
			}
		}
	}()
	return out
}

// ConfigurationWatchedFile watches path for changes, re-reading and
// re-parsing on each debounced notification. A missing file or a failed
// initial read+parse at startup emits only NoMoreConfiguration. Once the
// first read has succeeded, later parse errors are logged and skipped;
// the watcher stays live.
func ConfigurationWatchedFile(ctx context.Context, path string, watch bool, debounce time.Duration, parse func([]byte) (Configuration, error)) <-chan Event {
	return watchedFile(ctx, path, watch, debounce, parse,
		func(c Configuration) Event { return Event{Kind: EventUpdateConfiguration, Configuration: c} },
		Event{Kind: EventNoMoreConfiguration},
		ErrReadConfig,
	)
}

// SchemaWatchedFile watches path for changes, re-reading and re-parsing on
// each debounced notification. A missing file or a failed initial
// read+parse at startup emits only NoMoreSchema. Once the first read has
// succeeded, later parse errors are logged and skipped; the watcher stays
// live.
func SchemaWatchedFile(ctx context.Context, path string, watch bool, debounce time.Duration, parse func([]byte) (Schema, error)) <-chan Event {
	return watchedFile(ctx, path, watch, debounce, parse,
		func(s Schema) Event { return Event{Kind: EventUpdateSchema, Schema: s} },
		Event{Kind: EventNoMoreSchema},
		ErrReadSchema,
	)
}
