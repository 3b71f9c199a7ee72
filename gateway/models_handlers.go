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
	"net/http"
	"strings"
)

// listModels handles GET /api/models. The 'usecases' parameter is a comma
// list and may also be repeated; the default filter is agent-capable
// models.
func (s *Server) listModels(r *http.Request) (map[string]interface{}, error) {
	var usecases []string
	for _, raw := range r.URL.Query()["usecases"] {
		for _, usecase := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(usecase); trimmed != "" {
				usecases = append(usecases, trimmed)
			}
		}
	}
	if len(usecases) == 0 {
		usecases = []string{"MODEL_USECASE_AGENT"}
	}

	publicOnly := false
	switch strings.ToLower(r.URL.Query().Get("public_only")) {
	case "true", "1", "yes":
		publicOnly = true
	}

	return s.genAI.ListModels(r.Context(), usecases, publicOnly)
}

// listModelRegions handles GET /api/models/regions.
func (s *Server) listModelRegions(r *http.Request) (map[string]interface{}, error) {
	return s.genAI.ListDatacenterRegions(r.Context())
}
