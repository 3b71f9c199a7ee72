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

// ListWorkspaces lists all workspaces.
func (c *Client) ListWorkspaces(ctx context.Context) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodGet, "/v2/gen-ai/workspaces", nil, nil)
}

// GetWorkspace retrieves a workspace by UUID. An empty UUID resolves to the
// default workspace.
func (c *Client) GetWorkspace(ctx context.Context, workspaceUUID string) (map[string]interface{}, error) {
	uuid := orDefault(workspaceUUID, c.defaults.WorkspaceUUID)
	return c.do(ctx, http.MethodGet, "/v2/gen-ai/workspaces/"+url.PathEscape(uuid), nil, nil)
}
