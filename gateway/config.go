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
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config is the full environment surface of the gateway, resolved once at
// startup. Tokens and adapter defaults are intentionally not marked
// required here: a missing API_BEARER_TOKEN fails closed per request at
// the auth gate, and the adapters validate their own mandatory values at
// construction time so the failure names the adapter that cannot work.
type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	// APIBearerToken is the token callers must present on /api routes.
	APIBearerToken string `envconfig:"API_BEARER_TOKEN"`

	// DigitalOceanToken authenticates against the DigitalOcean REST API.
	DigitalOceanToken string `envconfig:"DIGITALOCEAN_API_TOKEN"`

	SpacesKey      string `envconfig:"SPACES_KEY"`
	SpacesSecret   string `envconfig:"SPACES_SECRET"`
	SpacesBucket   string `envconfig:"SPACES_BUCKET_NAME" default:"do-genai-api"`
	SpacesRegion   string `envconfig:"SPACES_REGION" default:"tor1"`
	SpacesEndpoint string `envconfig:"SPACES_ENDPOINT"`

	// Creation defaults used when callers omit the matching field.
	DefaultModelUUID          string `envconfig:"DEFAULT_MODEL_UUID"`
	DefaultWorkspaceUUID      string `envconfig:"DEFAULT_WORKSPACE_UUID"`
	DefaultProjectUUID        string `envconfig:"DEFAULT_PROJECT_UUID"`
	DefaultRegion             string `envconfig:"DEFAULT_REGION"`
	DefaultEmbeddingModelUUID string `envconfig:"DEFAULT_EMBEDDING_MODEL_UUID"`
	DefaultDatabaseID         string `envconfig:"DEFAULT_DATABASE_ID"`
	DefaultDatasourceBucket   string `envconfig:"DEFAULT_DATASOURCE_BUCKET"`
}

// Load resolves the configuration from the environment. DEFAULT_REGION
// falls back to SPACES_REGION so single-region deployments set one value.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process environment configuration: %w", err)
	}
	if cfg.DefaultRegion == "" {
		cfg.DefaultRegion = cfg.SpacesRegion
	}
	return cfg, nil
}
