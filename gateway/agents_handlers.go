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

	"oceankit/gateway/connectors/genai"
	"oceankit/gateway/shared/apierr"
)

// listAgents handles GET /api/agents.
func (s *Server) listAgents(r *http.Request) (map[string]interface{}, error) {
	return s.genAI.ListAgents(r.Context())
}

// createAgent handles POST /api/agents. A control-plane failure here is
// reported as a 200 with a diagnostic payload rather than an error status:
// callers poll agent state afterwards, and a gateway 500 would hide the
// vendor diagnostic they need.
func (s *Server) createAgent(r *http.Request) (map[string]interface{}, error) {
	var body struct {
		Name          string `json:"name"`
		Description   string `json:"description"`
		Instructions  string `json:"instructions"`
		ModelUUID     string `json:"model_uuid"`
		WorkspaceUUID string `json:"workspace_uuid"`
		Region        string `json:"region"`
		ProjectID     string `json:"project_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, apierr.Validationf("Request body must be provided")
	}
	if strings.TrimSpace(body.Name) == "" {
		return nil, apierr.Validationf("Agent name is required and cannot be empty")
	}
	if strings.TrimSpace(body.Instructions) == "" {
		return nil, apierr.Validationf("Agent instructions are required and cannot be empty")
	}

	result, err := s.genAI.CreateAgent(r.Context(), genai.AgentCreateRequest{
		Name:          body.Name,
		Description:   body.Description,
		Instructions:  body.Instructions,
		ModelUUID:     body.ModelUUID,
		WorkspaceUUID: body.WorkspaceUUID,
		Region:        body.Region,
		ProjectID:     body.ProjectID,
	})
	if err != nil {
		if apierr.IsDependency(err) {
			return map[string]interface{}{
				"message": "Agent creation failed",
				"error":   err.Error(),
			}, nil
		}
		return nil, err
	}

	return result, nil
}

// getAgent handles GET /api/agents/{agent_id}.
func (s *Server) getAgent(r *http.Request) (map[string]interface{}, error) {
	agentID := mux.Vars(r)["agent_id"]
	result, err := s.genAI.GetAgent(r.Context(), agentID)
	if err != nil {
		return nil, apierr.Validationf("Agent with ID '%s' not found", agentID)
	}
	return result, nil
}

// deleteAgent handles DELETE /api/agents/{agent_id}. The agent is fetched
// first, both to confirm it exists and to delete by the UUID the control
// plane reports rather than the raw path segment.
func (s *Server) deleteAgent(r *http.Request) (map[string]interface{}, error) {
	agentID := mux.Vars(r)["agent_id"]
	existing, err := s.genAI.GetAgent(r.Context(), agentID)
	if err != nil {
		return nil, apierr.Validationf("Agent with ID '%s' not found", agentID)
	}

	agentUUID := agentID
	if agent, ok := existing["agent"].(map[string]interface{}); ok {
		if uuid, ok := agent["uuid"].(string); ok && uuid != "" {
			agentUUID = uuid
		}
	}

	if _, err := s.genAI.DeleteAgent(r.Context(), agentUUID); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"message": fmt.Sprintf("Agent '%s' deleted successfully", agentID),
	}, nil
}

// listAgentAPIKeys handles GET /api/agents/{agent_id}/api-keys.
func (s *Server) listAgentAPIKeys(r *http.Request) (map[string]interface{}, error) {
	return s.genAI.ListAgentAPIKeys(r.Context(), mux.Vars(r)["agent_id"])
}

// createAgentAPIKey handles POST /api/agents/{agent_id}/api-keys. The key
// secret only appears in this response and is never stored by the gateway.
func (s *Server) createAgentAPIKey(r *http.Request) (map[string]interface{}, error) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, apierr.Validationf("Request body must be provided")
	}
	if strings.TrimSpace(body.Name) == "" {
		return nil, apierr.Validationf("API key name is required and cannot be empty")
	}

	return s.genAI.CreateAgentAPIKey(r.Context(), mux.Vars(r)["agent_id"], body.Name)
}

// deleteAgentAPIKey handles DELETE /api/agents/{agent_id}/api-keys/{key_id}.
func (s *Server) deleteAgentAPIKey(r *http.Request) (map[string]interface{}, error) {
	vars := mux.Vars(r)
	if _, err := s.genAI.DeleteAgentAPIKey(r.Context(), vars["agent_id"], vars["key_id"]); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"message": fmt.Sprintf("API key '%s' deleted successfully", vars["key_id"]),
	}, nil
}

// attachKnowledgeBase handles POST /api/agents/{agent_id}/attach-knowledgebase.
// Both sides are verified to exist before the attach call so the caller
// gets a 400 naming the missing resource instead of an opaque vendor 500.
func (s *Server) attachKnowledgeBase(r *http.Request) (map[string]interface{}, error) {
	agentID := mux.Vars(r)["agent_id"]

	var body struct {
		KnowledgeBaseUUID string `json:"knowledge_base_uuid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, apierr.Validationf("Request body must be provided")
	}
	if strings.TrimSpace(body.KnowledgeBaseUUID) == "" {
		return nil, apierr.Validationf("knowledge_base_uuid cannot be empty")
	}

	if _, err := s.genAI.GetAgent(r.Context(), agentID); err != nil {
		return nil, apierr.Validationf("Agent with ID '%s' not found", agentID)
	}
	if _, err := s.genAI.GetKnowledgeBase(r.Context(), body.KnowledgeBaseUUID); err != nil {
		return nil, apierr.Validationf("Knowledge base with ID '%s' not found", body.KnowledgeBaseUUID)
	}

	result, err := s.genAI.AttachKnowledgeBase(r.Context(), agentID, body.KnowledgeBaseUUID)
	if err != nil {
		return nil, err
	}
	result["message"] = fmt.Sprintf("Knowledge base '%s' attached to agent '%s'", body.KnowledgeBaseUUID, agentID)
	return result, nil
}
