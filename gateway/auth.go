// Copyright 2025 OceanKit
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gateway

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey string

const ctxKeyRequestID contextKey = "request_id"

// requestIDFrom returns the request ID stored in ctx, if any.
func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// requestIDMiddleware assigns each request an ID, honoring one supplied by
// the caller, and echoes it back in the response header.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)
		ctx := context.WithValue(r.Context(), ctxKeyRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authMiddleware guards the /api subrouter with a static bearer token.
// When the expected token is not configured the gate fails closed with a
// 500 rather than letting requests through. OPTIONS requests bypass the
// gate so CORS preflights work without credentials.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if s.cfg.APIBearerToken == "" {
			s.log.Error(requestIDFrom(r.Context()), "auth gate misconfigured: expected token unset", nil)
			writeError(w, http.StatusInternalServerError, "API_BEARER_TOKEN environment variable is required")
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, `Authorization header must start with "Bearer "`)
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if token != s.cfg.APIBearerToken {
			writeError(w, http.StatusUnauthorized, "Invalid authentication token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
