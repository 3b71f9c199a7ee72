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

// CreateIndexingJob starts a (re)indexing job for a knowledge base. A nil
// data source list means every data source is indexed. The job is created
// and never polled by this gateway.
func (c *Client) CreateIndexingJob(ctx context.Context, knowledgeBaseUUID string, dataSourceUUIDs []string) (map[string]interface{}, error) {
	body := map[string]interface{}{
		"knowledge_base_uuid": knowledgeBaseUUID,
		"data_source_uuids":   dataSourceUUIDs,
	}
	return c.do(ctx, http.MethodPost, "/v2/gen-ai/indexing_jobs", nil, body)
}

// GetIndexingJob retrieves the status of an indexing job.
func (c *Client) GetIndexingJob(ctx context.Context, indexingJobUUID string) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodGet, "/v2/gen-ai/indexing_jobs/"+url.PathEscape(indexingJobUUID), nil, nil)
}
