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
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"oceankit/gateway/shared/apierr"
)

// listBuckets handles GET /api/buckets.
func (s *Server) listBuckets(r *http.Request) (map[string]interface{}, error) {
	return s.store.ListBuckets(r.Context())
}

// createBucket handles POST /api/buckets. The region defaults to the
// configured Spaces region.
func (s *Server) createBucket(r *http.Request) (map[string]interface{}, error) {
	var body struct {
		Name   string `json:"name"`
		Region string `json:"region"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, apierr.Validationf("Request body must be provided")
	}
	if strings.TrimSpace(body.Name) == "" {
		return nil, apierr.Validationf("Bucket name is required and cannot be empty")
	}

	if err := s.store.CreateBucket(r.Context(), body.Name, body.Region); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"message": fmt.Sprintf("Bucket '%s' created successfully", body.Name),
		"bucket":  body.Name,
	}, nil
}

// getBucket handles GET /api/buckets/{bucket_name}.
func (s *Server) getBucket(r *http.Request) (map[string]interface{}, error) {
	info, err := s.store.BucketInfo(r.Context(), mux.Vars(r)["bucket_name"])
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"bucket": info}, nil
}

// deleteBucket handles DELETE /api/buckets/{bucket_name}. The bucket must
// already be empty; the adapter surfaces a clear message when it is not.
func (s *Server) deleteBucket(r *http.Request) (map[string]interface{}, error) {
	name := mux.Vars(r)["bucket_name"]
	if err := s.store.DeleteBucket(r.Context(), name); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"message": fmt.Sprintf("Bucket '%s' deleted successfully", name),
	}, nil
}
