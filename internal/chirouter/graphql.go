// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package chirouter

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/tomtom215/gatewaycore/internal/lifecycle"
	"github.com/tomtom215/gatewaycore/internal/middleware"
	"github.com/tomtom215/gatewaycore/internal/pipeline"
)

// maxQueryBodyBytes bounds how much of the request body attachQueryPlan
// will read before giving up on the stub executor; the real federation
// parser, a collaborator outside this package, would enforce its own limit.
const maxQueryBodyBytes = 1 << 20

// graphQLRequest is the GraphQL-over-HTTP request envelope this stub
// executor understands: just the query text, nothing else (no variables,
// no operationName; the real parser is out of scope).
type graphQLRequest struct {
	Query string `json:"query"`
}

// attachQueryPlan reads the request body (if any), classifies the leading
// "query"/"mutation" keyword of the GraphQL document, and attaches a
// pipeline.QueryPlan to the request context before calling next; the
// method-guard checkpoint downstream depends on one already being
// present. A request with no body, or a body that doesn't parse, gets an
// empty (query-kind) plan rather than an error: this stub executor's job
// is to feed the method guard, not to validate GraphQL.
func attachQueryPlan(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		plan := pipeline.QueryPlan{}

		if r.Body != nil {
			body, err := io.ReadAll(io.LimitReader(r.Body, maxQueryBodyBytes))
			r.Body.Close()
			if err == nil && len(body) > 0 {
				var req graphQLRequest
				if json.Unmarshal(body, &req) == nil && req.Query != "" {
					plan.Nodes = []pipeline.FetchNode{{
						ServiceName:   "stub",
						Operation:     req.Query,
						OperationKind: classifyOperation(req.Query),
					}}
				}
				r.Body = io.NopCloser(strings.NewReader(string(body)))
			}
		}

		next.ServeHTTP(w, r.WithContext(pipeline.WithQueryPlan(r.Context(), plan)))
	})
}

// classifyOperation reports whether a GraphQL document's leading keyword
// is "mutation"; anything else (including "query", "subscription", or an
// anonymous selection set) is treated as a query for method-guard
// purposes, matching the real executor's operation-kind tagging without
// implementing a parser.
func classifyOperation(query string) pipeline.OperationKind {
	trimmed := strings.TrimSpace(query)
	if strings.HasPrefix(trimmed, "mutation") {
		return pipeline.OperationKindMutation
	}
	return pipeline.OperationKindQuery
}

// graphqlHandler returns the terminal handler of the /graphql pipeline: a
// canned response keyed by the attached plan's operation kind, carrying
// the current schema's content hash so callers can observe a reload.
func graphqlHandler(schema lifecycle.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plan, _ := pipeline.QueryPlanFromContext(r.Context())

		data := map[string]any{"__typename": "Query"}
		if plan.ContainsMutation() {
			data = map[string]any{"__typename": "Mutation"}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": data,
			"extensions": map[string]any{
				"schemaHash": schema.Hash(),
			},
		})
	}
}

// perfHandler snapshots the performance monitor's sliding latency
// window as JSON, one entry per route, busiest first.
func perfHandler(pm *middleware.PerformanceMonitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"routes": pm.Stats(),
		})
	}
}

// healthHandler reports liveness plus the currently served schema hash,
// useful for confirming a reload landed without round-tripping /graphql.
func healthHandler(schema lifecycle.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":      "ok",
			"schema_hash": schema.Hash(),
		})
	}
}
