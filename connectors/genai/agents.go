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

package genai

import (
	"context"
	"net/http"
	"net/url"
)

// AgentCreateRequest carries the fields for creating an agent. Empty
// optional identifiers are auto-filled from the client defaults.
type AgentCreateRequest struct {
	Name          string
	Description   string
	Instructions  string
	ModelUUID     string
	WorkspaceUUID string
	Region        string
	ProjectID     string
}

// ListAgents lists all agents.
func (c *Client) ListAgents(ctx context.Context) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodGet, "/v2/gen-ai/agents", nil, nil)
}

// CreateAgent creates a new agent, filling omitted identifiers from the
// process-wide defaults.
func (c *Client) CreateAgent(ctx context.Context, req AgentCreateRequest) (map[string]interface{}, error) {
	body := map[string]interface{}{
		"name":           req.Name,
		"model_uuid":     orDefault(req.ModelUUID, c.defaults.ModelUUID),
		"workspace_uuid": orDefault(req.WorkspaceUUID, c.defaults.WorkspaceUUID),
		"region":         orDefault(req.Region, c.defaults.Region),
		"project_id":     orDefault(req.ProjectID, c.defaults.ProjectUUID),
	}
	if req.Description != "" {
		body["description"] = req.Description
	}
	// The API field is singular even though callers say "instructions".
	if req.Instructions != "" {
		body["instruction"] = req.Instructions
	}

	return c.do(ctx, http.MethodPost, "/v2/gen-ai/agents", nil, body)
}

// GetAgent retrieves a single agent by UUID.
func (c *Client) GetAgent(ctx context.Context, agentUUID string) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodGet, "/v2/gen-ai/agents/"+url.PathEscape(agentUUID), nil, nil)
}

// DeleteAgent deletes an agent by UUID.
func (c *Client) DeleteAgent(ctx context.Context, agentUUID string) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodDelete, "/v2/gen-ai/agents/"+url.PathEscape(agentUUID), nil, nil)
}

// AttachKnowledgeBase attaches a knowledge base to an agent.
func (c *Client) AttachKnowledgeBase(ctx context.Context, agentUUID, knowledgeBaseUUID string) (map[string]interface{}, error) {
	path := "/v2/gen-ai/agents/" + url.PathEscape(agentUUID) + "/knowledge_bases/" + url.PathEscape(knowledgeBaseUUID)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}
