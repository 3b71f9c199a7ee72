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

// ListAgentAPIKeys lists the API keys of an agent.
func (c *Client) ListAgentAPIKeys(ctx context.Context, agentUUID string) (map[string]interface{}, error) {
	path := "/v2/gen-ai/agents/" + url.PathEscape(agentUUID) + "/api_keys"
	return c.do(ctx, http.MethodGet, path, nil, nil)
}

// CreateAgentAPIKey creates a named API key for an agent. The secret value
// is only present in the creation response and is never stored locally.
func (c *Client) CreateAgentAPIKey(ctx context.Context, agentUUID, name string) (map[string]interface{}, error) {
	path := "/v2/gen-ai/agents/" + url.PathEscape(agentUUID) + "/api_keys"
	body := map[string]interface{}{
		"agent_uuid": agentUUID,
		"name":       name,
	}
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// DeleteAgentAPIKey deletes an API key from an agent.
func (c *Client) DeleteAgentAPIKey(ctx context.Context, agentUUID, apiKeyUUID string) (map[string]interface{}, error) {
	path := "/v2/gen-ai/agents/" + url.PathEscape(agentUUID) + "/api_keys/" + url.PathEscape(apiKeyUUID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
