// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package pipeline

import "net/http"

// Extractor pulls a value out of the inbound request before the
// downstream handler is dispatched. It must not mutate the request.
type Extractor[Ctx any] func(*http.Request) Ctx

// Wrapper is given the value Extractor produced and the live
// ResponseWriter at the moment the downstream handler is about to send
// its response, meaning its first WriteHeader or Write call. This is the Go
// analogue of map_future_with_context's "wrap the downstream future":
// net/http handlers don't suspend, so instead of mapping a future, the
// wrapper gets one synchronous hook at the point the response would
// otherwise have been flushed.
type Wrapper[Ctx any] func(ctx Ctx, w http.ResponseWriter)

// MapFutureWithContext builds a middleware from an Extractor and a
// Wrapper: extract runs synchronously before the downstream handler,
// wrap runs exactly once, synchronously, right before the downstream
// handler's response is sent to the client.
func MapFutureWithContext[Ctx any](extract Extractor[Ctx], wrap Wrapper[Ctx]) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := extract(r)
			cw := &contextResponseWriter[Ctx]{ResponseWriter: w, ctx: ctx, wrap: wrap}
			next.ServeHTTP(cw, r)
		})
	}
}

// contextResponseWriter defers wrap until the wrapped handler actually
// tries to send a response, so wrap can still affect headers even though
// it logically runs "after" the downstream handler returns.
type contextResponseWriter[Ctx any] struct {
	http.ResponseWriter
	ctx     Ctx
	wrap    Wrapper[Ctx]
	applied bool
}

func (c *contextResponseWriter[Ctx]) apply() {
	if c.applied {
		return
	}
	c.applied = true
	c.wrap(c.ctx, c.ResponseWriter)
}

func (c *contextResponseWriter[Ctx]) WriteHeader(status int) {
	c.apply()
	c.ResponseWriter.WriteHeader(status)
}

func (c *contextResponseWriter[Ctx]) Write(b []byte) (int, error) {
	c.apply()
	return c.ResponseWriter.Write(b)
}
