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

// Package genai is a narrow client for the DigitalOcean GenAI control plane
// and the managed-database listing endpoint. Each method issues exactly one
// REST call and returns the decoded response body largely unmodified, so
// route handlers can merge it straight into the response envelope.
// Validation of caller input is the handlers' job, not this package's.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"oceankit/gateway/shared/apierr"
)

const defaultBaseURL = "https://api.digitalocean.com"

// Defaults holds the process-wide identifiers used to auto-fill optional
// creation parameters when the caller omits them.
type Defaults struct {
	ModelUUID          string
	WorkspaceUUID      string
	ProjectUUID        string
	Region             string
	EmbeddingModelUUID string
	DatabaseID         string
	DatasourceBucket   string
}

// Config configures a Client.
type Config struct {
	// Token is the DigitalOcean API token. Required.
	Token string
	// BaseURL overrides the API endpoint, used by tests.
	BaseURL string
	// Defaults are the mandatory process-wide creation defaults.
	Defaults Defaults
	// HTTPClient overrides the HTTP client, used by tests.
	HTTPClient *http.Client
}

// Client calls the DigitalOcean REST API.
type Client struct {
	token      string
	baseURL    string
	defaults   Defaults
	httpClient *http.Client
}

// NewClient creates a DigitalOcean API client. It fails at construction
// time, not call time, when the token or a mandatory default is missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("DigitalOcean API token not found: set DIGITALOCEAN_API_TOKEN")
	}
	if cfg.Defaults.WorkspaceUUID == "" || cfg.Defaults.ModelUUID == "" || cfg.Defaults.Region == "" {
		return nil, fmt.Errorf("DEFAULT_WORKSPACE_UUID, DEFAULT_MODEL_UUID, and DEFAULT_REGION must be set")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		token:      cfg.Token,
		baseURL:    baseURL,
		defaults:   cfg.Defaults,
		httpClient: httpClient,
	}, nil
}

// apiError is the error body the DigitalOcean API returns on failure.
type apiError struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// do issues one API call and decodes the JSON response into a generic map.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (map[string]interface{}, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, apierr.Dependencyf("failed to encode request body for %s %s: %v", method, path, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, apierr.Dependencyf("failed to create request for %s %s: %v", method, path, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierr.Dependency(fmt.Sprintf("DigitalOcean API request failed: %s %s", method, path), "", "", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		var apiErr apiError
		_ = json.Unmarshal(raw, &apiErr)
		details := apiErr.Message
		if details == "" {
			details = string(raw)
		}
		return nil, apierr.Dependency(
			fmt.Sprintf("DigitalOcean API returned status %d for %s %s", resp.StatusCode, method, path),
			apiErr.ID,
			details,
			nil,
		)
	}

	if resp.StatusCode == http.StatusNoContent {
		return map[string]interface{}{}, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.Dependencyf("failed to read response for %s %s: %v", method, path, err)
	}
	if len(raw) == 0 {
		return map[string]interface{}{}, nil
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, apierr.Dependencyf("failed to decode response for %s %s: %v", method, path, err)
	}

	return decoded, nil
}

// orDefault returns value, or fallback when value is empty.
func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
