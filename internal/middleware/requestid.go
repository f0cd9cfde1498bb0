// Gatewaycore - Federated GraphQL Gateway Lifecycle Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatewaycore

package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tomtom215/gatewaycore/internal/logging"
)

// requestIDHeader is honored inbound (a proxy ahead of the gateway may
// have already tagged the request) and always set outbound.
const requestIDHeader = "X-Request-ID"

// RequestID tags every request with a request id and a fresh correlation
// id before the rest of the pipeline runs, so a reload landing mid-request
// can be matched against the requests it affected. The id is echoed in the
// response header and threaded through the context for logging.Ctx.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := logging.ContextWithRequestID(r.Context(), id)
		ctx = logging.ContextWithNewCorrelationID(ctx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
