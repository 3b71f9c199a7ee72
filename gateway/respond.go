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
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"oceankit/gateway/shared/apierr"
)

// handlerFunc is the shape every route handler takes: validate input, call
// an adapter, return the result map. Status-code mapping happens in one
// place, handle, never in the handlers themselves.
type handlerFunc func(r *http.Request) (map[string]interface{}, error)

// handle adapts a handlerFunc into an http.HandlerFunc that applies the
// uniform response envelope, records metrics, and logs the outcome.
func (s *Server) handle(operation string, fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := requestIDFrom(r.Context())

		result, err := fn(r)
		durationMS := float64(time.Since(start).Milliseconds())
		promRequestDuration.WithLabelValues(operation).Observe(durationMS)

		if err != nil {
			status, message := mapError(err)
			promRequestsTotal.WithLabelValues(operation, "error").Inc()
			s.log.ErrorWithCode(requestID, operation+" failed", status, err, nil)
			writeError(w, status, message)
			return
		}

		promRequestsTotal.WithLabelValues(operation, "success").Inc()
		s.log.InfoWithDuration(requestID, operation+" succeeded", durationMS, nil)
		writeSuccess(w, result)
	}
}

// mapError converts an error into an HTTP status and caller-facing message.
// Validation errors are caller faults (400), dependency errors upstream
// faults (500), anything unclassified a 500 with a generic prefix.
func mapError(err error) (int, string) {
	var typed *apierr.Error
	if errors.As(err, &typed) {
		switch typed.Kind {
		case apierr.KindValidation:
			return http.StatusBadRequest, typed.Error()
		case apierr.KindDependency:
			return http.StatusInternalServerError, typed.Error()
		}
	}
	return http.StatusInternalServerError, "An unexpected error occurred: " + err.Error()
}

// writeSuccess merges the handler result into the success envelope.
func writeSuccess(w http.ResponseWriter, result map[string]interface{}) {
	payload := make(map[string]interface{}, len(result)+1)
	for key, value := range result {
		payload[key] = value
	}
	payload["status"] = "success"
	writeJSON(w, http.StatusOK, payload)
}

// writeError writes the error envelope with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("ERROR: failed to encode response: %v", err)
	}
}
