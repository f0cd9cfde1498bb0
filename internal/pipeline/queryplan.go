// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package pipeline

import "context"

// OperationKind distinguishes a fetch node's GraphQL operation kind.
type OperationKind string

const (
	OperationKindQuery    OperationKind = "query"
	OperationKindMutation OperationKind = "mutation"
)

// FetchNode is a single leaf of a query plan's fetch tree. The reference
// stub executor in internal/chirouter never builds anything deeper than a
// single node, but ContainsMutation walks the full slice so a richer
// planner can be dropped in without touching the method guard.
type FetchNode struct {
	ServiceName   string
	Operation     string
	OperationKind OperationKind
}

// QueryPlan is the minimal stand-in for a compiled federated query plan:
// just enough structure to answer whether executing it would touch a
// mutation, which is all the method-guard checkpoint needs.
type QueryPlan struct {
	Nodes []FetchNode
}

// ContainsMutation reports whether any fetch node in the plan is a
// mutation.
func (p QueryPlan) ContainsMutation() bool {
	for _, n := range p.Nodes {
		if n.OperationKind == OperationKindMutation {
			return true
		}
	}
	return false
}

// Location is a GraphQL error source location; always empty for errors
// raised by pipeline checkpoints, which have no parser position to report.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// GraphQLError is the canonical single-error shape the GraphQL-over-HTTP
// spec expects in a response body's "errors" array.
type GraphQLError struct {
	Message    string         `json:"message"`
	Locations  []Location     `json:"locations"`
	Path       []any          `json:"path"`
	Extensions map[string]any `json:"extensions"`
}

// ErrorEnvelope wraps one or more GraphQLErrors the way a GraphQL-over-HTTP
// response body does.
type ErrorEnvelope struct {
	Errors []GraphQLError `json:"errors"`
}

type contextKey int

const queryPlanContextKey contextKey = iota

// WithQueryPlan attaches a compiled QueryPlan to ctx for downstream
// checkpoints (namely MethodGuard) to read.
func WithQueryPlan(ctx context.Context, plan QueryPlan) context.Context {
	return context.WithValue(ctx, queryPlanContextKey, plan)
}

// QueryPlanFromContext retrieves the QueryPlan attached by WithQueryPlan,
// if any.
func QueryPlanFromContext(ctx context.Context) (QueryPlan, bool) {
	plan, ok := ctx.Value(queryPlanContextKey).(QueryPlan)
	return plan, ok
}
