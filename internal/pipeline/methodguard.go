// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package pipeline

import (
	"encoding/json"
	"net/http"

	"github.com/tomtom215/gatewaycore/internal/metrics"
)

// mutationPostOnlyMessage is the canonical error message for a mutation
// rejected over a non-POST method.
const mutationPostOnlyMessage = "Mutations can only be sent over HTTP POST"

// MethodGuard is a synchronous checkpoint: if the request's query plan
// (attached via WithQueryPlan) contains a mutation and the HTTP method is
// not POST, it short-circuits with 405, an Allow: POST header, and the
// canonical GraphQL error body, invoking the downstream handler zero
// times. Every other request (any method carrying a query-only plan, or
// a POST carrying a mutation) passes through unchanged, invoking the
// downstream handler exactly once.
//
// A request with no query plan attached is passed through unchanged;
// the guard has nothing to check without one.
func MethodGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		plan, ok := QueryPlanFromContext(r.Context())
		if ok && r.Method != http.MethodPost && plan.ContainsMutation() {
			metrics.RecordMethodGuardRejection(r.Method)
			w.Header().Set("Allow", http.MethodPost)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusMethodNotAllowed)
			_ = json.NewEncoder(w).Encode(ErrorEnvelope{
				Errors: []GraphQLError{{
					Message:    mutationPostOnlyMessage,
					Locations:  []Location{},
					Path:       nil,
					Extensions: map[string]any{},
				}},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
