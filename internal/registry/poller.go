// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package registry

import (
	"context"
	"time"

	"github.com/tomtom215/gatewaycore/internal/lifecycle"
	"github.com/tomtom215/gatewaycore/internal/logging"
	"github.com/tomtom215/gatewaycore/internal/metrics"
)

// Source polls the Apollo-uplink-style registry endpoint every
// cfg.PollInterval, emitting UpdateSchema on a successful, changed fetch.
// Transport errors, non-200 responses, breaker-open rejections, and parse
// failures are logged and metered, then the tick is skipped: no event is
// emitted and the poller stays live ; a transient registry error never tears the source down.
// Source terminates, stopping its ticker, when ctx is cancelled.
func Source(ctx context.Context, cfg Config) <-chan lifecycle.Event {
	out := make(chan lifecycle.Event)
	go func() {
		defer close(out)

		c := newClient(cfg)
		ticker := time.NewTicker(cfg.PollInterval)
		defer ticker.Stop()

		var lastHash string

		poll := func() {
			start := time.Now()
			result, err := c.fetch(ctx)
			duration := time.Since(start)

			if err != nil {
				logging.Warn().Err(err).Msg("registry: poll failed, skipping tick")
				if isBreakerRejection(err) {
					metrics.RecordRegistryPoll("rejected", duration)
				} else {
					metrics.RecordRegistryPoll("error", duration)
				}
				return
			}

			schema, err := ParseSchema([]byte(result.Schema))
			if err != nil {
				logging.Warn().Err(err).Msg("registry: schema parse failed, skipping tick")
				metrics.RecordRegistryPoll("error", duration)
				return
			}

			if schema.Hash() == lastHash {
				metrics.RecordRegistryPoll("unchanged", duration)
				return
			}

			lastHash = schema.Hash()
			metrics.RecordRegistryPoll("updated", duration)
			logging.Info().Str("schema_hash", lastHash).Msg("registry: fetched updated schema")

			select {
			case out <- lifecycle.Event{Kind: lifecycle.EventUpdateSchema, Schema: schema}:
			case <-ctx.Done():
				return
			}
		}

		poll()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				poll()
			}
		}
	}()
	return out
}
