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
	"strconv"
)

// ListModels lists the available models, optionally filtered by use case.
func (c *Client) ListModels(ctx context.Context, usecases []string, publicOnly bool) (map[string]interface{}, error) {
	query := url.Values{}
	for _, usecase := range usecases {
		query.Add("usecases", usecase)
	}
	query.Set("public_only", strconv.FormatBool(publicOnly))

	return c.do(ctx, http.MethodGet, "/v2/gen-ai/models", query, nil)
}

// ListDatacenterRegions lists the datacenter regions that can host agents
// and knowledge bases.
func (c *Client) ListDatacenterRegions(ctx context.Context) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodGet, "/v2/gen-ai/regions", nil, nil)
}
