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

// ListKnowledgeBases lists all knowledge bases.
func (c *Client) ListKnowledgeBases(ctx context.Context) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodGet, "/v2/gen-ai/knowledge_bases", nil, nil)
}

// CreateKnowledgeBase creates a knowledge base wired to the default project
// and, when configured, the default embedding model, search database, and
// Spaces data source.
func (c *Client) CreateKnowledgeBase(ctx context.Context, name, description string) (map[string]interface{}, error) {
	body := map[string]interface{}{
		"name":       name,
		"project_id": c.defaults.ProjectUUID,
	}
	if description != "" {
		body["description"] = description
	}
	if c.defaults.EmbeddingModelUUID != "" {
		body["embedding_model_uuid"] = c.defaults.EmbeddingModelUUID
	}
	if c.defaults.DatabaseID != "" {
		body["database_id"] = c.defaults.DatabaseID
	}
	if c.defaults.DatasourceBucket != "" {
		body["datasources"] = []map[string]interface{}{
			{
				"spaces_data_source": map[string]interface{}{
					"bucket_name": c.defaults.DatasourceBucket,
					"region":      c.defaults.Region,
				},
			},
		}
	}

	return c.do(ctx, http.MethodPost, "/v2/gen-ai/knowledge_bases", nil, body)
}

// GetKnowledgeBase retrieves a knowledge base by UUID.
func (c *Client) GetKnowledgeBase(ctx context.Context, knowledgeBaseUUID string) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodGet, "/v2/gen-ai/knowledge_bases/"+url.PathEscape(knowledgeBaseUUID), nil, nil)
}

// DeleteKnowledgeBase deletes a knowledge base by UUID.
func (c *Client) DeleteKnowledgeBase(ctx context.Context, knowledgeBaseUUID string) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodDelete, "/v2/gen-ai/knowledge_bases/"+url.PathEscape(knowledgeBaseUUID), nil, nil)
}

// ListKnowledgeBaseDataSources lists the data sources feeding a knowledge
// base's indexing process.
func (c *Client) ListKnowledgeBaseDataSources(ctx context.Context, knowledgeBaseUUID string) (map[string]interface{}, error) {
	path := "/v2/gen-ai/knowledge_bases/" + url.PathEscape(knowledgeBaseUUID) + "/data_sources"
	return c.do(ctx, http.MethodGet, path, nil, nil)
}
