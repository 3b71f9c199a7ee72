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
	"strings"
)

// ListOpenSearchDatabases lists the managed database clusters whose engine
// is opensearch. The engine match is case-insensitive. This is the one
// place an adapter reshapes a vendor response instead of passing it
// through.
func (c *Client) ListOpenSearchDatabases(ctx context.Context) (map[string]interface{}, error) {
	response, err := c.do(ctx, http.MethodGet, "/v2/databases", nil, nil)
	if err != nil {
		return nil, err
	}

	clusters, ok := response["databases"].([]interface{})
	if !ok {
		return map[string]interface{}{
			"databases": []interface{}{},
			"count":     0,
		}, nil
	}

	opensearch := make([]interface{}, 0, len(clusters))
	for _, cluster := range clusters {
		entry, ok := cluster.(map[string]interface{})
		if !ok {
			continue
		}
		engine, _ := entry["engine"].(string)
		if strings.EqualFold(engine, "opensearch") {
			opensearch = append(opensearch, entry)
		}
	}

	return map[string]interface{}{
		"databases": opensearch,
		"count":     len(opensearch),
	}, nil
}
