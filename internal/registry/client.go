// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/gatewaycore/internal/logging"
	"github.com/tomtom215/gatewaycore/internal/metrics"
)

// DefaultEndpoint is the uplink endpoint used when Config.Endpoint is
// empty.
const DefaultEndpoint = "https://uplink.api.apollographql.com/"

// requestTimeout bounds a single poll's HTTP round trip, independent of
// PollInterval.
const requestTimeout = 10 * time.Second

const breakerName = "apollo-uplink"

// Config configures the registry client. It is the HTTP/circuit-breaker
// counterpart of config.RegistryConfig; callers pass that struct's fields
// straight through.
type Config struct {
	Endpoint     string
	GraphRef     string
	ApolloKey    string
	PollInterval time.Duration
}

// client wraps an http.Client with a named gobreaker circuit breaker: a
// bounded failure ratio opens the circuit, a cooldown half-opens it, and
// every outcome is recorded to internal/metrics.
type client struct {
	cfg     Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*SupergraphResult]
}

func newClient(cfg Config) *client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	c := &client{
		cfg:  cfg,
		http: &http.Client{Timeout: requestTimeout},
	}

	c.breaker = gobreaker.NewCircuitBreaker[*SupergraphResult](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("registry: opening circuit")
			}
			return shouldTrip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("registry: circuit breaker state transition")
			metrics.RecordCircuitBreakerTransition(name, fromStr, toStr, stateToFloat(to))
		},
	})

	return c
}

// fetch performs one poll tick: an HTTPS GET against the uplink endpoint,
// circuit-broken, returning the parsed SupergraphResult on success.
func (c *client) fetch(ctx context.Context) (*SupergraphResult, error) {
	result, err := c.breaker.Execute(func() (*SupergraphResult, error) {
		return c.doRequest(ctx)
	})

	switch {
	case err == nil:
		metrics.RecordCircuitBreakerResult(breakerName, "success")
	case isBreakerRejection(err):
		metrics.RecordCircuitBreakerResult(breakerName, "rejected")
	default:
		metrics.RecordCircuitBreakerResult(breakerName, "failure")
	}
	return result, err
}

func (c *client) doRequest(ctx context.Context) (*SupergraphResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("registry: building request: %w", err)
	}
	q := req.URL.Query()
	q.Set("graph_ref", c.cfg.GraphRef)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+c.cfg.ApolloKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry: transport error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry: uplink returned status %d", resp.StatusCode)
	}

	var result SupergraphResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("registry: decoding response: %w", err)
	}
	return &result, nil
}

func isBreakerRejection(err error) bool {
	return err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
