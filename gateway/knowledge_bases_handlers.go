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

// listKnowledgeBases handles GET /api/knowledgebase.
func (s *Server) listKnowledgeBases(r *http.Request) (map[string]interface{}, error) {
	return s.genAI.ListKnowledgeBases(r.Context())
}

// createKnowledgeBase handles POST /api/knowledgebase.
func (s *Server) createKnowledgeBase(r *http.Request) (map[string]interface{}, error) {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, apierr.Validationf("Request body must be provided")
	}
	if strings.TrimSpace(body.Name) == "" {
		return nil, apierr.Validationf("Knowledge base name is required and cannot be empty")
	}

	return s.genAI.CreateKnowledgeBase(r.Context(), body.Name, body.Description)
}

// getKnowledgeBase handles GET /api/knowledgebase/{kb_id}. The data
// sources are fetched alongside and attached to the response.
func (s *Server) getKnowledgeBase(r *http.Request) (map[string]interface{}, error) {
	kbID := mux.Vars(r)["kb_id"]

	result, err := s.genAI.GetKnowledgeBase(r.Context(), kbID)
	if err != nil {
		return nil, apierr.Validationf("Knowledge base with ID '%s' not found", kbID)
	}

	sources, err := s.genAI.ListKnowledgeBaseDataSources(r.Context(), kbID)
	if err != nil {
		return nil, err
	}
	if list, ok := sources["knowledge_base_data_sources"]; ok {
		result["data_sources"] = list
	} else {
		result["data_sources"] = sources
	}

	return result, nil
}

// deleteKnowledgeBase handles DELETE /api/knowledgebase/{kb_id}.
func (s *Server) deleteKnowledgeBase(r *http.Request) (map[string]interface{}, error) {
	kbID := mux.Vars(r)["kb_id"]

	if _, err := s.genAI.GetKnowledgeBase(r.Context(), kbID); err != nil {
		return nil, apierr.Validationf("Knowledge base with ID '%s' not found", kbID)
	}
	if _, err := s.genAI.DeleteKnowledgeBase(r.Context(), kbID); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"message": fmt.Sprintf("Knowledge base '%s' deleted successfully", kbID),
	}, nil
}

// listKnowledgeBaseDataSources handles GET /api/knowledgebase/{kb_id}/datasources.
func (s *Server) listKnowledgeBaseDataSources(r *http.Request) (map[string]interface{}, error) {
	return s.genAI.ListKnowledgeBaseDataSources(r.Context(), mux.Vars(r)["kb_id"])
}

// reindexKnowledgeBase handles POST /api/knowledgebase/reindex. An omitted
// data_source_uuids indexes every data source; when present it must be a
// list of non-empty strings.
func (s *Server) reindexKnowledgeBase(r *http.Request) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, apierr.Validationf("Request body must be provided")
	}

	kbUUID, _ := raw["knowledge_base_uuid"].(string)
	if strings.TrimSpace(kbUUID) == "" {
		return nil, apierr.Validationf("knowledge_base_uuid cannot be empty")
	}

	var dataSourceUUIDs []string
	if rawSources, present := raw["data_source_uuids"]; present && rawSources != nil {
		list, ok := rawSources.([]interface{})
		if !ok {
			return nil, apierr.Validationf("data_source_uuids must be a list")
		}
		dataSourceUUIDs = make([]string, 0, len(list))
		for _, item := range list {
			uuid, ok := item.(string)
			if !ok || strings.TrimSpace(uuid) == "" {
				return nil, apierr.Validationf("All items in data_source_uuids must be non-empty strings")
			}
			dataSourceUUIDs = append(dataSourceUUIDs, uuid)
		}
	}

	job, err := s.genAI.CreateIndexingJob(r.Context(), kbUUID, dataSourceUUIDs)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"message": "Re-indexing job created successfully",
		"job":     job,
	}, nil
}

// getIndexingJob handles GET /api/knowledgebase/indexing-jobs/{job_id}.
func (s *Server) getIndexingJob(r *http.Request) (map[string]interface{}, error) {
	return s.genAI.GetIndexingJob(r.Context(), mux.Vars(r)["job_id"])
}
